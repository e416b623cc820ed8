// Package challenge builds the randomized linear-combination check used by
// Protocol II to let the Client convince itself, without revealing the
// underlying hash values in the clear, that its homomorphically recomputed
// hashes equal the Server's claimed plaintext hashes.
//
// Grounded on original_source/homomorphic_functions/boolean_ops256.rs's
// compute_challenge.
package challenge

import (
	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/word256"
)

// Compute returns a + b*(compHash1-expHash1) + c*(compHash2-expHash2) mod
// 2^256, where compHash1/compHash2 are homomorphically computed and
// expHash1/expHash2/a/b/c are plaintext known to the party evaluating the
// challenge (the Client, in Protocol II's case).
func Compute(
	sk *fhe.ServerKey,
	compHash1, compHash2 word256.Cipher,
	expHash1, expHash2 word256.Plain,
	a, b, c word256.Plain,
) word256.Cipher {
	encMult1 := word256.MulPlainByCipher(sk, compHash1, b)
	encMult2 := word256.MulPlainByCipher(sk, compHash2, c)
	sumMult := word256.Add(sk, encMult1, encMult2)

	negExpHash1 := word256.PlainMinusShift(expHash1, 0)
	negExpHash2 := word256.PlainMinusShift(expHash2, 0)
	negMult1 := word256.PlainMul(negExpHash1, b)
	negMult2 := word256.PlainMul(negExpHash2, c)

	plainPart := word256.PlainAdd(a, negMult1)
	plainPart = word256.PlainAdd(plainPart, negMult2)

	return word256.AddPlain(sk, sumMult, plainPart)
}
