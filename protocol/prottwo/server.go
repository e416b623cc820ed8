package prottwo

import (
	"fmt"
	"net"
	"os"

	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/pad"
	"github.com/summitto/fdexchange/kernel/trivium"
	"github.com/summitto/fdexchange/kernel/word256"
	"github.com/summitto/fdexchange/logging"
	"github.com/summitto/fdexchange/protocol/common"
	"github.com/summitto/fdexchange/utils"
	"github.com/summitto/fdexchange/wire"
)

// Server holds a Protocol II server session's configuration.
type Server struct {
	DataPath   string
	ClientAddr string
	ListenAddr string // address to listen for the Arbiter on
	Log        *logging.Logger
}

// Run executes one full Protocol II server session.
func (s *Server) Run() (common.Status, error) {
	log := s.Log
	guard := &common.SequenceGuard{}

	guard.Step(1)
	data, err := os.ReadFile(s.DataPath)
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: reading data file: %w", err)
	}
	paddedBits := pad.Bytes(data)

	ck, sk, err := fhe.GenKeys()
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: generating keys: %w", err)
	}
	symKey, iv := GetRandKeyIV()

	symEncData := trivium.SymmetricEnc(paddedBits, symKey, iv)
	log.Infof("encrypted the data symmetrically")

	guard.Step(2)
	encryptedKey := toCiphertextArray80(fhe.EncryptBools(ck, symKey[:]))
	hashSymKey := utils.Sha3HashFromBools(symKey[:])

	guard.Step(3)
	clientConn, err := net.Dial("tcp", s.ClientAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: dialing Client: %w", err)
	}
	defer clientConn.Close()
	if err := wire.Send(clientConn, symEncData); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(clientConn, encryptedKey); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(clientConn, hashSymKey); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(clientConn, iv); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(clientConn, sk); err != nil {
		return common.Abort, err
	}
	log.Infof("sent (ct, Hk, kct, iv, pk) off-chain to Client")

	guard.Step(4)
	var chal word256.Cipher
	if err := wire.Receive(clientConn, &chal); err != nil {
		return common.Abort, err
	}
	log.Infof("received challenge from Client")

	aPlain := word256.Decrypt(&ck, chal)
	aBits := append([]bool(nil), aPlain[:]...)

	guard.Step(5)
	listener, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: listening for Arbiter: %w", err)
	}
	defer listener.Close()
	scConn, err := listener.Accept()
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: accepting Arbiter connection: %w", err)
	}
	defer scConn.Close()

	var hashA, hashK string
	if err := wire.Receive(scConn, &hashA); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(scConn, &hashK); err != nil {
		return common.Abort, err
	}

	guard.Step(6)
	log.Infof("verifying client's inputs")
	verified := VerifyKA(hashA, hashK, aBits, symKey[:])
	status := common.StatusOf(verified)

	keyToSend := [80]bool{}
	var aToSend [256]bool
	if verified {
		keyToSend = symKey
		copy(aToSend[:], aBits)
	}
	if err := wire.Send(scConn, status); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(scConn, keyToSend); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(scConn, aToSend); err != nil {
		return common.Abort, err
	}
	log.Infof("sent (status, k, a) on-chain to Arbiter")

	guard.Step(7)
	var final common.Status
	if err := wire.Receive(scConn, &final); err != nil {
		return common.Abort, err
	}
	log.Infof("final outcome from Arbiter = %s", final)
	return final, nil
}
