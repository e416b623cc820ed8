// Package prottwo implements the hybrid fair-data-exchange protocol
// (Protocol II): the Server symmetrically encrypts its data under a fresh
// Trivium key, hands the Client the homomorphically-encrypted key, and the
// Client builds a single randomized linear-combination challenge that lets
// the Arbiter confirm -- without ever seeing the data in the clear -- that
// the Server's claimed hashes of the key and the data are the ones the
// Client actually recomputed. The Arbiter does receive the key in the clear
// from the Server, and forwards it to the Client only on SUCCESS.
//
// Grounded message-for-message on original_source/src/bin/server2.rs,
// client2.rs, and smart_contract2.rs.
package prottwo

import (
	"encoding/hex"
	"fmt"

	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/word256"
	"github.com/summitto/fdexchange/utils"
)

// GetRandKeyIV draws a fresh 80-bit Trivium key and IV from the OS CSPRNG,
// unpacked LSB-first-per-byte, matching get_rand_key_iv.
func GetRandKeyIV() (key [80]bool, iv [80]bool) {
	copy(key[:], utils.BytesToBoolBitsLSB(utils.GetRandom(10)))
	copy(iv[:], utils.BytesToBoolBitsLSB(utils.GetRandom(10)))
	return
}

// GetRandABC draws the three 256-bit random challenge scalars a, b, c,
// matching get_rand_abc.
func GetRandABC() (a, b, c word256.Plain) {
	var bufA, bufB, bufC [32]byte
	copy(bufA[:], utils.GetRandom(32))
	copy(bufB[:], utils.GetRandom(32))
	copy(bufC[:], utils.GetRandom(32))
	return word256.PlainFromDigest(bufA), word256.PlainFromDigest(bufB), word256.PlainFromDigest(bufC)
}

// VerifyKA is the Protocol II acceptance check: the revealed key bits and
// challenge-result bits must hash to the values the Client pre-committed
// to on-chain. Grounded on original_source/prot_utils.rs's verify_ka.
func VerifyKA(hashA, hashK string, a, k []bool) bool {
	return utils.Sha3HashFromBools(a) == hashA && utils.Sha3HashFromBools(k) == hashK
}

// toCiphertextArray80 copies a slice of 80 ciphertexts into a fixed array,
// the shape trivium.NewFHE/CipherKeystream expects for the Trivium key.
func toCiphertextArray80(ct []fhe.Ciphertext) [80]fhe.Ciphertext {
	var out [80]fhe.Ciphertext
	copy(out[:], ct)
	return out
}

// digestFromHex hex-decodes a 32-byte digest string into the Plain layout
// PlainFromDigest expects.
func digestFromHex(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("prottwo: decoding hex digest: %w", err)
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("prottwo: digest %q is %d bytes, want 32", s, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
