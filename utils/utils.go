// Package utils collects small helpers shared across the protocol and
// kernel packages: byte/bit conversion, slice concatenation, randomness,
// and ECDSA key plumbing for the receipt package.
//
// Adapted from the teacher's utils/utils.go: kept are XorBytes, Concat,
// GetRandom, RandInt and the ECDSA helpers; dropped are the garbled-circuit point-and-permute
// Encrypt/Decrypt, the AES-GCM/CTR/ECB helpers, and the GHASH dead code —
// none of those primitives exist in this protocol (see DESIGN.md's utils
// entry for the full justification).
package utils

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/x509"
	"encoding/binary"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	mathrand "math/rand"

	"github.com/dustin/go-humanize"
	"golang.org/x/crypto/sha3"
)

// Sha3_256 returns the SHA3-256 digest of data.
func Sha3_256(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

// Assert panics with a diagnostic message when condition is false.
func Assert(condition bool, msg string) {
	if !condition {
		panic("assert failed: " + msg)
	}
}

// XorBytes XORs two equal-length byte slices.
func XorBytes(a, b []byte) []byte {
	if len(a) != len(b) {
		panic("utils: XorBytes operands have different lengths")
	}
	c := make([]byte, len(a))
	for i := range a {
		c[i] = a[i] ^ b[i]
	}
	return c
}

// Concat concatenates byte slices into a single new slice.
func Concat(slices ...[]byte) []byte {
	total := 0
	for _, s := range slices {
		total += len(s)
	}
	out := make([]byte, 0, total)
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}

// BytesToBoolBitsLSB expands bytes into a LSB-first bool slice, matching
// the bit ordering used throughout the padding and hashing kernel.
func BytesToBoolBitsLSB(data []byte) []bool {
	bits := make([]bool, len(data)*8)
	for i, b := range data {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = (b>>uint(j))&1 == 1
		}
	}
	return bits
}

// BoolBitsToBytesLSB packs a LSB-first bool slice (length a multiple of 8)
// back into bytes.
func BoolBitsToBytesLSB(bits []bool) []byte {
	if len(bits)%8 != 0 {
		panic("utils: bit length must be a multiple of 8")
	}
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			if bits[i*8+j] {
				b |= 1 << uint(j)
			}
		}
		out[i] = b
	}
	return out
}

// GetRandom returns size cryptographically random bytes.
func GetRandom(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("utils: reading random bytes: %v", err))
	}
	return buf
}

// RandInt returns a random integer in [min, max), seeded from the OS
// CSPRNG so repeated calls within the same process don't collide.
func RandInt(min, max int) int {
	seed := int64(binary.BigEndian.Uint64(GetRandom(8)))
	return mathrand.New(mathrand.NewSource(seed)).Intn(max-min) + min
}

// HumanBytes formats a byte count for log lines (e.g. session payload
// sizes), matching the corpus's preference for go-humanize over hand-
// rolled KB/MB formatting.
func HumanBytes(n uint64) string {
	return humanize.Bytes(n)
}

// BoolsToHex packs a LSB-first bool slice (length a multiple of 8) into
// bytes and hex-encodes them, matching the reference's bools_to_hex used to
// render a homomorphically-decrypted digest for comparison.
func BoolsToHex(bits []bool) string {
	return hex.EncodeToString(BoolBitsToBytesLSB(bits))
}

// Sha3HashFromBools hex-encodes the SHA3-256 digest of an arbitrary-length
// LSB-first bool slice, padding the final byte with zero bits if its length
// is not a multiple of 8 — the plaintext-side counterpart of
// sha3_hash_from_vec_bool, used to check a revealed symmetric key or
// challenge scalar against its pre-committed hash.
func Sha3HashFromBools(bits []bool) string {
	padded := bits
	if len(bits)%8 != 0 {
		padded = make([]bool, len(bits)+(8-len(bits)%8))
		copy(padded, bits)
	}
	return hex.EncodeToString(Sha3_256(BoolBitsToBytesLSB(padded)))
}

// HexSha3 hex-encodes the SHA3-256 digest of raw bytes, matching the
// reference's hex_sha3 used by both clients to double-check the data they
// ultimately recovered.
func HexSha3(data []byte) string {
	return hex.EncodeToString(Sha3_256(data))
}

// ECDSASign signs the SHA3-256 digest of the concatenation of items.
func ECDSASign(key *ecdsa.PrivateKey, items ...[]byte) ([]byte, error) {
	digest := Sha3_256(Concat(items...))
	sig, err := ecdsa.SignASN1(rand.Reader, key, digest)
	if err != nil {
		return nil, fmt.Errorf("utils: ECDSA sign: %w", err)
	}
	return sig, nil
}

// ECDSAVerify verifies a signature produced by ECDSASign.
func ECDSAVerify(pub *ecdsa.PublicKey, sig []byte, items ...[]byte) bool {
	digest := Sha3_256(Concat(items...))
	return ecdsa.VerifyASN1(pub, digest, sig)
}

// ECDSAPubkeyToPEM PEM-encodes a public key for distribution to peers.
func ECDSAPubkeyToPEM(key *ecdsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("utils: marshaling public key: %w", err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return pem.EncodeToMemory(block), nil
}
