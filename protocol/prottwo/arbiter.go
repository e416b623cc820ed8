package prottwo

import (
	"fmt"
	"net"

	"github.com/summitto/fdexchange/logging"
	"github.com/summitto/fdexchange/protocol/common"
	"github.com/summitto/fdexchange/wire"
)

// Arbiter holds a Protocol II arbiter session's configuration.
type Arbiter struct {
	ListenAddr string // address to listen for the Client on
	ServerAddr string // address to dial the Server on
	Log        *logging.Logger
}

// Run executes one full Protocol II arbiter session.
func (a *Arbiter) Run() (common.Status, error) {
	log := a.Log
	guard := &common.SequenceGuard{}

	guard.Step(1)
	listener, err := net.Listen("tcp", a.ListenAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: listening for Client: %w", err)
	}
	defer listener.Close()
	clientConn, err := listener.Accept()
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: accepting Client connection: %w", err)
	}
	defer clientConn.Close()

	var hashA, hashK string
	if err := wire.Receive(clientConn, &hashA); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(clientConn, &hashK); err != nil {
		return common.Abort, err
	}
	log.Infof("accepted connection from Client, read (Ha, Hk)")

	guard.Step(2)
	serverConn, err := net.Dial("tcp", a.ServerAddr)
	if err != nil {
		return common.Abort, fmt.Errorf("prottwo: dialing Server: %w", err)
	}
	defer serverConn.Close()
	if err := wire.Send(serverConn, hashA); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(serverConn, hashK); err != nil {
		return common.Abort, err
	}

	guard.Step(3)
	var status common.Status
	var key [80]bool
	var a [256]bool
	if err := wire.Receive(serverConn, &status); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &key); err != nil {
		return common.Abort, err
	}
	if err := wire.Receive(serverConn, &a); err != nil {
		return common.Abort, err
	}

	guard.Step(4)
	final := status
	if status == common.Success {
		log.Infof("running VerifyKA")
		final = common.StatusOf(VerifyKA(hashA, hashK, a[:], key[:]))
	}
	if final != common.Success {
		key = [80]bool{}
	}

	if err := wire.Send(clientConn, final); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(clientConn, key); err != nil {
		return common.Abort, err
	}
	if err := wire.Send(serverConn, final); err != nil {
		return common.Abort, err
	}

	log.Infof("final outcome = %s", final)
	return final, nil
}
