package prottwo

import (
	"fmt"
	"net"
	"os"

	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/challenge"
	"github.com/summitto/fdexchange/kernel/pad"
	"github.com/summitto/fdexchange/kernel/sha3fhe"
	"github.com/summitto/fdexchange/kernel/trivium"
	"github.com/summitto/fdexchange/kernel/word256"
	"github.com/summitto/fdexchange/logging"
	"github.com/summitto/fdexchange/protocol/common"
	"github.com/summitto/fdexchange/utils"
	"github.com/summitto/fdexchange/wire"
)

// Client holds a Protocol II client session's configuration.
type Client struct {
	HashPath    string
	ListenAddr  string
	ArbiterAddr string
	Log         *logging.Logger
}

// Run executes one full Protocol II client session: accept the Server's
// symmetrically-encrypted data and homomorphically-encrypted key, build
// the challenge, and decrypt once the Arbiter releases the key.
func (c *Client) Run() (common.Status, error) {
	log := c.Log
	guard := &common.SequenceGuard{}

	guard.Step(1)
	hashData, err := os.ReadFile(c.HashPath)
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: reading hash file: %w", err)
	}
	hashStr := string(hashData)

	guard.Step(2)
	listener, err := net.Listen("tcp", c.ListenAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: listening for Server: %w", err)
	}
	defer listener.Close()
	serverConn, err := listener.Accept()
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: accepting Server connection: %w", err)
	}
	defer serverConn.Close()

	var symEncData []bool
	var encryptedKey [80]fhe.Ciphertext
	var hashSymKey string
	var iv [80]bool
	var pk fhe.ServerKey
	if err := wire.Receive(serverConn, &symEncData); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &encryptedKey); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &hashSymKey); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &iv); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &pk); err != nil {
		return common.Abort, err
	}
	log.Infof("accepted connection from Server, read (ct, kct, Hk, iv, pk)")

	guard.Step(3)
	log.Infof("decrypting the data homomorphically")
	dataDec := trivium.HomomorphicSymmetricDec(&pk, symEncData, encryptedKey, iv)

	guard.Step(4)
	log.Infof("computing the hash of the data homomorphically")
	dataHashComp := sha3fhe.Hash256(&pk, dataDec)

	guard.Step(5)
	log.Infof("computing the hash of the key homomorphically")
	paddedSymKey := pad.Cipher(&pk, encryptedKey[:])
	keyHashComp := sha3fhe.Hash256(&pk, paddedSymKey)

	guard.Step(6)
	log.Infof("computing the challenge")
	a, b, cScalar := GetRandABC()

	symKeyHashBytes, err := digestFromHex(hashSymKey)
	if err != nil {
		return common.Abort, err
	}
	dataHashBytes, err := digestFromHex(hashStr)
	if err != nil {
		return common.Abort, err
	}
	symKeyHashBits := word256.PlainFromDigest(symKeyHashBytes)
	dataHashBits := word256.PlainFromDigest(dataHashBytes)

	var keyHashCipher, dataHashCipher word256.Cipher
	copy(keyHashCipher[:], keyHashComp[:])
	copy(dataHashCipher[:], dataHashComp[:])

	chal := challenge.Compute(&pk, keyHashCipher, dataHashCipher, symKeyHashBits, dataHashBits, a, b, cScalar)

	guard.Step(7)
	if err := wire.Send(serverConn, chal); err != nil {
		return common.Abort, err
	}
	log.Infof("sent challenge to the Server")

	hashA := utils.Sha3HashFromBools(a[:])

	guard.Step(8)
	scConn, err := net.Dial("tcp", c.ArbiterAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: dialing Arbiter: %w", err)
	}
	defer scConn.Close()
	if err := wire.Send(scConn, hashA); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(scConn, hashSymKey); err != nil {
		return common.Abort, err
	}
	log.Infof("sent (Ha, Hk) on-chain to Arbiter")

	guard.Step(9)
	var status common.Status
	var key [80]bool
	if err := wire.Receive(scConn, &status); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(scConn, &key); err != nil {
		return common.Abort, err
	}

	if status == common.Abort {
		log.Infof("final outcome from Arbiter = ABORT")
		return common.Abort, nil
	}
	log.Infof("final outcome from Arbiter = SUCCESS, decrypting the data")

	guard.Step(10)
	decBits := trivium.SymmetricDec(symEncData, key, iv)
	unpadded := pad.UnpadBytes(decBits)

	directHash := utils.HexSha3(unpadded)
	if directHash == hashStr {
		log.Infof("retrieved the expected data")
	} else {
		log.Warnf("did not retrieve the expected data: want %s, got %s", hashStr, directHash)
	}
	return common.Success, nil
}
