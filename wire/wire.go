// Package wire implements the point-to-point message framing used between
// Server, Client, and Arbiter: each message is a 4-byte big-endian length
// prefix followed by that many bytes of payload.
//
// Grounded on original_source/prot_utils.rs's read_one_message and
// prepare_message.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxMessageBytes bounds a single framed message to guard against a
// malicious or buggy peer claiming an unreasonable length prefix.
const MaxMessageBytes = 256 << 20 // 256 MiB

// ReadMessage reads one length-prefixed message from r. It does not wait
// for the connection to close.
func ReadMessage(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("wire: reading length prefix: %w", err)
	}
	msgLen := binary.BigEndian.Uint32(lenBuf[:])
	if msgLen > MaxMessageBytes {
		return nil, fmt.Errorf("wire: message length %d exceeds limit %d", msgLen, MaxMessageBytes)
	}

	buf := make([]byte, msgLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("wire: reading message body: %w", err)
	}
	return buf, nil
}

// WriteMessage writes msg to w prefixed with its 4-byte big-endian length.
func WriteMessage(w io.Writer, msg []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(msg)))

	buf := make([]byte, 0, 4+len(msg))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, msg...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("wire: writing message: %w", err)
	}
	return nil
}

// ReadAll reads every remaining byte from r until EOF, for a peer that
// signals end-of-data by closing its half of the connection rather than
// length-prefixing. The protocol packages do not use it: every protocol
// message, statuses included, is framed.
func ReadAll(r io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("wire: reading to EOF: %w", err)
	}
	return buf, nil
}
