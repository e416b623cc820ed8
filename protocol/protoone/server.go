// Package protoone implements the pure-FHE fair-data-exchange protocol
// (Protocol I): the Server homomorphically hands the Client an encrypted,
// padded copy of its data and a commitment to the decryption key; the
// Client homomorphically hashes the ciphertext and relays both hashes
// through the Arbiter, who releases the key only if the Server's
// commitment opens to a key that decrypts to the claimed hash.
//
// Grounded message-for-message on original_source/src/bin/server1.rs,
// client1.rs, and smart_contract1.rs.
package protoone

import (
	"fmt"
	"net"
	"os"

	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/commitment"
	"github.com/summitto/fdexchange/kernel/pad"
	"github.com/summitto/fdexchange/logging"
	"github.com/summitto/fdexchange/protocol/common"
	"github.com/summitto/fdexchange/wire"
)

// Server holds a Protocol I server session's configuration.
type Server struct {
	DataPath   string // path to the plaintext data file
	ClientAddr string // address to dial the Client on
	ListenAddr string // address to listen for the Arbiter on
	Log        *logging.Logger
}

// Run executes one full Protocol I server session: pad and encrypt the
// data, hand it off to the Client, wait for the Arbiter's verification
// round-trip, and report the final outcome.
func (s *Server) Run() (common.Status, error) {
	log := s.Log
	guard := &common.SequenceGuard{}

	guard.Step(1)
	data, err := os.ReadFile(s.DataPath)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: reading data file: %w", err)
	}
	paddedBits := pad.Bytes(data)

	ck, sk, err := fhe.GenKeys()
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: generating keys: %w", err)
	}
	encData := fhe.EncryptBools(ck, paddedBits)

	guard.Step(2)
	ckBytes, err := encodeClientKey(ck)
	if err != nil {
		return common.Abort, err
	}
	com, opening, err := commitment.Commit(ckBytes)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: committing to client key: %w", err)
	}

	guard.Step(3)
	clientConn, err := net.Dial("tcp", s.ClientAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: dialing client: %w", err)
	}
	if err := wire.Send(clientConn, encData); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(clientConn, sk); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(clientConn, com); err != nil {
		return common.Abort, err
	}
	clientConn.Close()
	log.Infof("sent (ct, pk, com) off-chain to Client")

	guard.Step(4)
	listener, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: listening for Arbiter: %w", err)
	}
	defer listener.Close()
	scConn, err := listener.Accept()
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: accepting Arbiter connection: %w", err)
	}
	defer scConn.Close()

	var hashCt []fhe.Ciphertext
	var hash, relayedCom string
	if err := wire.Receive(scConn, &hashCt); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(scConn, &hash); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(scConn, &relayedCom); err != nil {
		return common.Abort, err
	}

	guard.Step(5)
	log.Infof("verifying client's inputs")
	verified := Verify(hashCt, hash, relayedCom, opening)
	status := common.StatusOf(verified)

	nonce := [32]byte{}
	revealed := []byte{}
	if verified {
		nonce = opening.Nonce
		revealed = opening.Data
	}
	if err := wire.Send(scConn, status); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(scConn, nonce); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(scConn, revealed); err != nil {
		return common.Abort, err
	}
	log.Infof("sent (status, opening) on-chain to Arbiter")

	guard.Step(6)
	var final common.Status
	if err := wire.Receive(scConn, &final); err != nil {
		return common.Abort, err
	}
	log.Infof("final outcome from Arbiter = %s", final)
	return final, nil
}
