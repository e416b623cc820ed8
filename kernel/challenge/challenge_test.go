package challenge

import (
	"testing"

	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/word256"
)

func samplePlain(seed int) word256.Plain {
	var p word256.Plain
	for i := range p {
		p[i] = (i*11+seed)%6 == 0
	}
	return p
}

// expected mirrors Compute's formula entirely in the clear, so the
// homomorphic result can be checked against a plaintext oracle without
// needing a hardcoded vector.
func expected(compHash1, compHash2, expHash1, expHash2, a, b, c word256.Plain) word256.Plain {
	mult1 := word256.PlainMul(compHash1, b)
	mult2 := word256.PlainMul(compHash2, c)
	sumMult := word256.PlainAdd(mult1, mult2)

	negExp1 := word256.PlainMinusShift(expHash1, 0)
	negExp2 := word256.PlainMinusShift(expHash2, 0)
	negMult1 := word256.PlainMul(negExp1, b)
	negMult2 := word256.PlainMul(negExp2, c)

	plainPart := word256.PlainAdd(a, negMult1)
	plainPart = word256.PlainAdd(plainPart, negMult2)

	return word256.PlainAdd(sumMult, plainPart)
}

func TestComputeMatchesPlaintextFormula(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	compHash1 := samplePlain(1)
	compHash2 := samplePlain(2)
	expHash1 := compHash1 // the honest case: claimed hash equals recomputed hash
	expHash2 := compHash2
	a := samplePlain(3)
	b := samplePlain(4)
	c := samplePlain(5)

	encCompHash1 := word256.Trivial(&sk, compHash1)
	encCompHash2 := word256.Trivial(&sk, compHash2)

	result := Compute(&sk, encCompHash1, encCompHash2, expHash1, expHash2, a, b, c)
	got := word256.Decrypt(&ck, result)
	want := expected(compHash1, compHash2, expHash1, expHash2, a, b, c)
	if got != want {
		t.Errorf("Compute result does not match the plaintext formula")
	}
}

func TestComputeHonestCaseRevealsA(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	hash1 := samplePlain(7)
	hash2 := samplePlain(8)
	a := samplePlain(9)
	b := samplePlain(10)
	c := samplePlain(11)

	encHash1 := word256.Trivial(&sk, hash1)
	encHash2 := word256.Trivial(&sk, hash2)

	// When the claimed hashes equal the recomputed ones, both
	// b*(comp-exp) and c*(comp-exp) vanish and the challenge collapses to a.
	result := Compute(&sk, encHash1, encHash2, hash1, hash2, a, b, c)
	got := word256.Decrypt(&ck, result)
	if got != a {
		t.Errorf("Compute with matching hashes should reveal a, got %v, want %v", got, a)
	}
}

func TestComputeDishonestCaseDiffersFromA(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	compHash1 := samplePlain(1)
	expHash1 := samplePlain(2) // claimed hash does not match what was recomputed
	hash2 := samplePlain(3)
	a := samplePlain(4)
	var one word256.Plain
	one[255] = true // b=1 so the mismatch surfaces directly
	var zero word256.Plain

	encCompHash1 := word256.Trivial(&sk, compHash1)
	encHash2 := word256.Trivial(&sk, hash2)

	result := Compute(&sk, encCompHash1, encHash2, expHash1, hash2, a, one, zero)
	got := word256.Decrypt(&ck, result)
	if got == a {
		t.Errorf("Compute with mismatched hashes and b=1 should not reveal a unchanged")
	}
}
