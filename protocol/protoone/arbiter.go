package protoone

import (
	"fmt"
	"net"

	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/commitment"
	"github.com/summitto/fdexchange/logging"
	"github.com/summitto/fdexchange/protocol/common"
	"github.com/summitto/fdexchange/wire"
)

// Arbiter holds a Protocol I arbiter session's configuration. The Arbiter
// plays the role original_source calls the "smart contract": a
// disinterested third party that relays the Client's claims to the Server,
// then re-runs Verify itself before releasing the Server's key.
type Arbiter struct {
	ListenAddr string // address to listen for the Client on
	ServerAddr string // address to dial the Server on
	Log        *logging.Logger
}

// Run executes one full Protocol I arbiter session.
func (a *Arbiter) Run() (common.Status, error) {
	log := a.Log
	guard := &common.SequenceGuard{}

	guard.Step(1)
	listener, err := net.Listen("tcp", a.ListenAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: listening for Client: %w", err)
	}
	defer listener.Close()
	clientConn, err := listener.Accept()
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: accepting Client connection: %w", err)
	}
	defer clientConn.Close()

	var hashCt []fhe.Ciphertext
	var hash, com string
	if err := wire.Receive(clientConn, &hashCt); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(clientConn, &hash); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(clientConn, &com); err != nil {
		return common.Abort, err
	}
	log.Infof("accepted connection from Client, read (Hct, H, Com)")

	guard.Step(2)
	serverConn, err := net.Dial("tcp", a.ServerAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("protoone: dialing Server: %w", err)
	}
	defer serverConn.Close()
	if err := wire.Send(serverConn, hashCt); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(serverConn, hash); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(serverConn, com); err != nil {
		return common.Abort, err
	}

	guard.Step(3)
	var status common.Status
	var nonce [32]byte
	var data []byte
	if err := wire.Receive(serverConn, &status); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &nonce); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &data); err != nil {
		return common.Abort, err
	}

	guard.Step(4)
	final := status
	if status == common.Success {
		log.Infof("re-verifying the Server's opening")
		opening := commitment.Opening{Nonce: nonce, Data: data}
		final = common.StatusOf(Verify(hashCt, hash, com, opening))
	}
	if final != common.Success {
		data = []byte{}
	}

	if err := wire.Send(clientConn, final); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(clientConn, data); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(serverConn, final); err != nil {
		return common.Abort, err
	}

	log.Infof("final outcome = %s", final)
	return final, nil
}
