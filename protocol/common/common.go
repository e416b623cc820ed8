// Package common holds the pieces both fair-data-exchange protocols share:
// the Server/Client/Arbiter port assignment, the binary outcome status, and
// a step-ordering guard in the spirit of session.Session's sequenceCheck.
//
// Grounded on original_source/prot_utils.rs (SUCCESS/ABORT, the three
// ports, DATA_FILE/HASH_FILE) and on the teacher's session/session.go,
// which enforces message ordering with a running "messages seen" check
// rather than trusting callers to sequence themselves correctly.
package common

import "fmt"

// Status is the binary outcome the Arbiter decides and relays to both
// Server and Client.
type Status byte

const (
	// Abort means the Arbiter rejected the exchange: the data the Client
	// would otherwise receive never crosses the wire.
	Abort Status = 0
	// Success means the exchange is honored: the Arbiter releases
	// whatever the protocol gates behind it (a decryption key).
	Success Status = 1
)

func (s Status) String() string {
	if s == Success {
		return "SUCCESS"
	}
	return "ABORT"
}

// StatusOf converts a verification result to the wire Status.
func StatusOf(ok bool) Status {
	if ok {
		return Success
	}
	return Abort
}

// Default TCP ports for the three roles, unchanged across both protocols.
const (
	ServerPort  = 9001
	ClientPort  = 9002
	ArbiterPort = 9003
)

// SequenceGuard enforces that a role advances through its steps in strict,
// one-shot order. Each protocol session runs its fixed sequence of steps
// exactly once, so the guard only has to track "the last step that ran" --
// a single-session analogue of sequenceCheck's msgsSeen bookkeeping.
type SequenceGuard struct {
	next int
}

// Step panics if n is not the step immediately following the last one
// that ran, the same "out of order" failure session.Session.sequenceCheck
// raises for a misordered message.
func (g *SequenceGuard) Step(n int) {
	if n != g.next+1 {
		panic(fmt.Sprintf("protocol: step %d run out of order, expected %d", n, g.next+1))
	}
	g.next = n
}
