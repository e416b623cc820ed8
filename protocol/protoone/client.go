package protoone

import (
	"fmt"
	"net"
	"os"

	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/pad"
	"github.com/summitto/fdexchange/kernel/sha3fhe"
	"github.com/summitto/fdexchange/logging"
	"github.com/summitto/fdexchange/protocol/common"
	"github.com/summitto/fdexchange/utils"
	"github.com/summitto/fdexchange/wire"
)

// Client holds a Protocol I client session's configuration.
type Client struct {
	HashPath    string // path to the file holding the expected hex digest
	ListenAddr  string // address to listen for the Server on
	ArbiterAddr string // address to dial the Arbiter on
	Log         *logging.Logger
}

// Run executes one full Protocol I client session: accept the Server's
// ciphertext, homomorphically hash it, let the Arbiter adjudicate, and
// decrypt the data once (and only if) the Arbiter releases the key.
func (c *Client) Run() (common.Status, error) {
	log := c.Log
	guard := &common.SequenceGuard{}

	guard.Step(1)
	hashData, err := os.ReadFile(c.HashPath)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: reading hash file: %w", err)
	}
	hashStr := string(hashData)

	guard.Step(2)
	listener, err := net.Listen("tcp", c.ListenAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: listening for Server: %w", err)
	}
	defer listener.Close()
	serverConn, err := listener.Accept()
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: accepting Server connection: %w", err)
	}
	defer serverConn.Close()

	var ct []fhe.Ciphertext
	var sk fhe.ServerKey
	var com string
	if err := wire.Receive(serverConn, &ct); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &sk); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &com); err != nil {
		return common.Abort, err
	}
	log.Infof("accepted connection from Server, read (ct, pk, com)")

	guard.Step(3)
	hashEnc := sha3fhe.Hash256(&sk, ct)
	log.Infof("computed Hct = SHA3(ct)")

	guard.Step(4)
	scConn, err := net.Dial("tcp", c.ArbiterAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: dialing Arbiter: %w", err)
	}
	defer scConn.Close()
	if err := wire.Send(scConn, hashEnc[:]); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(scConn, hashStr); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(scConn, com); err != nil {
		return common.Abort, err
	}
	log.Infof("sent (H, Hct, Com) on-chain to Arbiter")

	guard.Step(5)
	var status common.Status
	var data []byte
	if err := wire.Receive(scConn, &status); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(scConn, &data); err != nil {
		return common.Abort, err
	}

	if status == common.Abort {
		log.Infof("final outcome from Arbiter = ABORT")
		return common.Abort, nil
	}
	log.Infof("final outcome from Arbiter = SUCCESS, decrypting the data")

	guard.Step(6)
	ck, err := decodeClientKey(data)
	if err != nil {
		return common.Abort, err
	}
	decBits := fhe.DecryptBools(ck, ct)
	unpadded := pad.UnpadBytes(decBits)

	directHash := utils.HexSha3(unpadded)
	if directHash == hashStr {
		log.Infof("retrieved the expected data")
	} else {
		log.Warnf("did not retrieve the expected data: want %s, got %s", hashStr, directHash)
	}
	return common.Success, nil
}
