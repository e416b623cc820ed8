// Package commitment implements a hash-based commitment scheme: commit to
// a message by hashing a random nonce prepended to it, open later by
// revealing the nonce and recomputing the hash.
//
// Grounded on original_source/commitment.rs.
package commitment

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Opening reveals the nonce and data behind a commitment.
type Opening struct {
	Nonce [32]byte
	Data  []byte
}

// Commit returns the hex-encoded commitment SHA3-256(nonce||data) and the
// Opening needed to verify it later. The nonce is drawn from the OS CSPRNG.
func Commit(data []byte) (string, Opening, error) {
	var nonce [32]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", Opening{}, fmt.Errorf("commitment: sampling nonce: %w", err)
	}
	opening := Opening{Nonce: nonce, Data: append([]byte(nil), data...)}
	return hashOf(opening), opening, nil
}

// VerifyOpen reports whether (opening.Nonce, opening.Data) opens commitment.
func VerifyOpen(commitment string, opening Opening) bool {
	return hashOf(opening) == commitment
}

func hashOf(opening Opening) string {
	h := sha3.New256()
	h.Write(opening.Nonce[:])
	h.Write(opening.Data)
	return hex.EncodeToString(h.Sum(nil))
}
