// Package trivium implements the Trivium stream cipher generically over its
// bit representation, so the exact same register-update logic drives both a
// plaintext keystream and a homomorphically-evaluated one.
//
// Grounded on original_source/homomorphic_functions/new_trivium.rs, which
// duplicates the same update equations once for bool and once for
// Ciphertext; here a single generic Stream[T] with an Ops[T] table replaces
// that duplication; SPEC_FULL.md singles this out as the one place
// generics are the idiomatic Go analogue of the original's type
// duplication.
package trivium

import (
	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/parallel"
)

// Ops supplies the two gates and the bit-lifting operation a Stream[T]
// needs; it is the generic stand-in for tfhe-rs's Ciphertext/bool
// dual implementation.
type Ops[T any] struct {
	Xor      func(a, b T) T
	And      func(a, b T) T
	FromBool func(bit bool) T
}

// PlainOps instantiates Ops for a plaintext bool stream.
func PlainOps() Ops[bool] {
	return Ops[bool]{
		Xor:      func(a, b bool) bool { return a != b },
		And:      func(a, b bool) bool { return a && b },
		FromBool: func(bit bool) bool { return bit },
	}
}

// FHEOps instantiates Ops for an encrypted Ciphertext stream under the
// given evaluation key.
func FHEOps(sk *fhe.ServerKey) Ops[fhe.Ciphertext] {
	return Ops[fhe.Ciphertext]{
		Xor:      sk.Xor,
		And:      sk.And,
		FromBool: sk.TrivialEncrypt,
	}
}

// Stream is a running Trivium cipher: three shift registers (A: 93 bits,
// B: 84 bits, C: 111 bits) updated 64 bits at a time.
type Stream[T any] struct {
	a, b, c []T
	ops     Ops[T]
}

// New builds a Stream from an 80-bit key and 80-bit IV, running the
// mandatory 1152-step (18*64) warm-up before returning.
func New[T any](ops Ops[T], key [80]T, iv [80]bool) *Stream[T] {
	a := make([]T, 93)
	b := make([]T, 84)
	c := make([]T, 111)
	zero := ops.FromBool(false)
	for i := range a {
		a[i] = zero
	}
	for i := range b {
		b[i] = zero
	}
	for i := range c {
		c[i] = zero
	}
	for i := 0; i < 80; i++ {
		a[93-80+i] = key[i]
		b[84-80+i] = ops.FromBool(iv[i])
	}
	one := ops.FromBool(true)
	c[0], c[1], c[2] = one, one, one

	s := &Stream[T]{a: a, b: b, c: c, ops: ops}
	for i := 0; i < 18; i++ {
		s.Next64()
	}
	return s
}

// NewPlain builds a plaintext Trivium stream.
func NewPlain(key, iv [80]bool) *Stream[bool] {
	return New(PlainOps(), key, iv)
}

// NewFHE builds an encrypted Trivium stream: key bits are already
// ciphertexts, iv bits are plaintext and get trivially encrypted.
func NewFHE(sk *fhe.ServerKey, key [80]fhe.Ciphertext, iv [80]bool) *Stream[fhe.Ciphertext] {
	return New(FHEOps(sk), key, iv)
}

// outputAndValues computes the output bit and the three register-update
// values n steps ahead, without mutating the registers — safe to call for
// several values of n concurrently.
func (s *Stream[T]) outputAndValues(n int) (o, a, b, c T) {
	ops := s.ops
	tempA := ops.Xor(s.a[65-n], s.a[92-n])
	tempB := ops.Xor(s.b[68-n], s.b[83-n])
	tempC := ops.Xor(s.c[65-n], s.c[110-n])
	aAnd := ops.And(s.a[91-n], s.a[90-n])
	bAnd := ops.And(s.b[82-n], s.b[81-n])
	cAnd := ops.And(s.c[109-n], s.c[108-n])

	o = ops.Xor(ops.Xor(tempA, tempB), tempC)
	a = ops.Xor(tempC, ops.Xor(cAnd, s.a[68-n]))
	b = ops.Xor(tempA, ops.Xor(aAnd, s.b[77-n]))
	c = ops.Xor(tempB, ops.Xor(bAnd, s.c[86-n]))
	return
}

// push shifts all three registers by one position toward their high end,
// dropping the oldest value and inserting the new one at index 0, so that
// indices count from the newest element (the reference's StaticDeque::push).
func (s *Stream[T]) push(a, b, c T) {
	copy(s.a[1:], s.a[:len(s.a)-1])
	s.a[0] = a
	copy(s.b[1:], s.b[:len(s.b)-1])
	s.b[0] = b
	copy(s.c[1:], s.c[:len(s.c)-1])
	s.c[0] = c
}

// NextBool advances the stream by one step, returning the new output bit.
func (s *Stream[T]) NextBool() T {
	o, a, b, c := s.outputAndValues(0)
	s.push(a, b, c)
	return o
}

// Next64 advances the stream by 64 steps, computing all 64 lookaheads
// concurrently before applying the register updates in order; it returns
// the 64 output bits, oldest first.
func (s *Stream[T]) Next64() []T {
	type result struct{ o, a, b, c T }
	results := make([]result, 64)
	_ = parallel.For(64, func(n int) error {
		o, a, b, c := s.outputAndValues(n)
		results[n] = result{o, a, b, c}
		return nil
	})

	out := make([]T, 64)
	for n := 0; n < 64; n++ {
		r := results[n]
		out[n] = r.o
		s.push(r.a, r.b, r.c)
	}
	return out
}

// Keystream draws exactly size bits from the stream, 64 at a time with a
// bit-by-bit tail.
func Keystream[T any](s *Stream[T], size int) []T {
	out := make([]T, 0, size)
	for len(out)+64 <= size {
		out = append(out, s.Next64()...)
	}
	for len(out) < size {
		out = append(out, s.NextBool())
	}
	return out
}

// PlainKeystream derives a size-bit plaintext keystream from key and iv.
func PlainKeystream(key, iv [80]bool, size int) []bool {
	return Keystream(NewPlain(key, iv), size)
}

// CipherKeystream derives a size-bit encrypted keystream from an encrypted
// key and plaintext iv.
func CipherKeystream(sk *fhe.ServerKey, key [80]fhe.Ciphertext, iv [80]bool, size int) []fhe.Ciphertext {
	return Keystream(NewFHE(sk, key, iv), size)
}

// SymmetricEnc XORs input with the Trivium keystream derived from key/iv.
func SymmetricEnc(input []bool, key, iv [80]bool) []bool {
	keystream := PlainKeystream(key, iv, len(input))
	out := make([]bool, len(input))
	for i := range input {
		out[i] = input[i] != keystream[i]
	}
	return out
}

// SymmetricDec is identical to SymmetricEnc: Trivium is a stream cipher.
func SymmetricDec(input []bool, key, iv [80]bool) []bool {
	return SymmetricEnc(input, key, iv)
}

// HomomorphicSymmetricDec XORs a plaintext ciphertext bit-vector with an
// encrypted keystream derived from an encrypted key, producing an
// encrypted result — used when the Client decrypts the Server's symmetric
// ciphertext under a key it holds only in encrypted form, so the key is
// never revealed to the Client in the clear.
func HomomorphicSymmetricDec(sk *fhe.ServerKey, input []bool, key [80]fhe.Ciphertext, iv [80]bool) []fhe.Ciphertext {
	keystream := CipherKeystream(sk, key, iv, len(input))
	out := make([]fhe.Ciphertext, len(input))
	for i := range input {
		out[i] = sk.XorPlain(keystream[i], input[i])
	}
	return out
}
