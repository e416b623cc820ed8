package protoone

import (
	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/commitment"
	"github.com/summitto/fdexchange/utils"
)

// Verify is the Protocol I acceptance check run by both the Server (against
// its own commitment) and the Arbiter (against the opening the Server
// reveals): the opening must actually open com, the ClientKey it carries
// must decrypt hashCt to the hex digest the Client claims as hash.
//
// Grounded on original_source/prot_utils.rs's verify.
func Verify(hashCt []fhe.Ciphertext, hash, com string, opening commitment.Opening) bool {
	if !commitment.VerifyOpen(com, opening) {
		return false
	}
	ck, err := decodeClientKey(opening.Data)
	if err != nil {
		return false
	}
	hashComp := fhe.DecryptBools(ck, hashCt)
	return utils.BoolsToHex(hashComp) == hash
}

func decodeClientKey(data []byte) (fhe.ClientKey, error) {
	var ck fhe.ClientKey
	if err := ck.UnmarshalBinary(data); err != nil {
		return fhe.ClientKey{}, err
	}
	return ck, nil
}

func encodeClientKey(ck fhe.ClientKey) ([]byte, error) {
	return ck.MarshalBinary()
}
