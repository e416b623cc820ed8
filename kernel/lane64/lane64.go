// Package lane64 implements the 64-bit lane operations used by the Keccak
// permutation: bitwise XOR/AND over encrypted lanes, a fixed-index rotate
// (a pure reindex, no gates), and plain-mask XOR for round constants.
// Grounded on original_source/homomorphic_functions/boolean_ops64.rs
// (xor_64, and_64, rotate_right, xor_with_plain_64).
package lane64

import (
	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/parallel"
)

// Lane is a 64-bit encrypted lane, bit 0 = index 0, little-endian within
// the lane (SPEC_FULL.md §3).
type Lane [64]fhe.Ciphertext

// Xor computes a XOR b pointwise, lane-parallel.
func Xor(sk *fhe.ServerKey, a, b Lane) Lane {
	var out Lane
	_ = parallel.For(64, func(i int) error {
		out[i] = sk.Xor(a[i], b[i])
		return nil
	})
	return out
}

// And computes a AND b pointwise, lane-parallel.
func And(sk *fhe.ServerKey, a, b Lane) Lane {
	var out Lane
	_ = parallel.For(64, func(i int) error {
		out[i] = sk.And(a[i], b[i])
		return nil
	})
	return out
}

// Not computes the bitwise complement of a lane.
func Not(sk *fhe.ServerKey, a Lane) Lane {
	var out Lane
	_ = parallel.For(64, func(i int) error {
		out[i] = sk.Not(a[i])
		return nil
	})
	return out
}

// XorWithPlain XORs a lane with a 64-bit plaintext mask, preserving noise
// via the FHE primitive's XOR-with-known-bit form.
func XorWithPlain(sk *fhe.ServerKey, a Lane, mask [64]bool) Lane {
	var out Lane
	_ = parallel.For(64, func(i int) error {
		out[i] = sk.XorPlain(a[i], mask[i])
		return nil
	})
	return out
}

// RotateRight rotates the lane right by n (0<=n<64): a pure index shift,
// no gate operations issued.
func RotateRight(a Lane, n int) Lane {
	n = n % 64
	if n < 0 {
		n += 64
	}
	if n == 0 {
		return a
	}
	var out Lane
	for i := 0; i < 64; i++ {
		out[i] = a[(i-n+64)%64]
	}
	return out
}

// RotateLeft rotates the lane left by n (0<=n<64): a pure index shift.
func RotateLeft(a Lane, n int) Lane {
	return RotateRight(a, 64-(n%64))
}

// Trivial builds a lane of trivial encryptions from a 64-bit plaintext
// mask, little-endian.
func Trivial(sk *fhe.ServerKey, mask [64]bool) Lane {
	var out Lane
	for i := 0; i < 64; i++ {
		out[i] = sk.TrivialEncrypt(mask[i])
	}
	return out
}

// Decrypt recovers the 64-bit plaintext mask from a lane.
func Decrypt(ck *fhe.ClientKey, a Lane) [64]bool {
	var out [64]bool
	for i := 0; i < 64; i++ {
		out[i] = ck.Decrypt(a[i])
	}
	return out
}
