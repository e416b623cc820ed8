package sha3fhe

import (
	"testing"

	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/pad"
	"github.com/summitto/fdexchange/utils"
)

// TestHash256EmptyString checks the homomorphic hash against the plaintext
// SHA3-256 reference implementation for the empty-string input, the
// simplest non-trivial padding case (a single rate block).
func TestHash256EmptyString(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	paddedBits := pad.Bytes(nil)
	if len(paddedBits) != RateBits {
		t.Fatalf("empty-string padding should be exactly one rate block, got %d bits", len(paddedBits))
	}

	input := make([]fhe.Ciphertext, len(paddedBits))
	for i, bit := range paddedBits {
		input[i] = sk.TrivialEncrypt(bit)
	}

	digestCt := Hash256(&sk, input)
	var digestBits [256]bool
	for i := range digestCt {
		digestBits[i] = ck.Decrypt(digestCt[i])
	}
	got := utils.BoolsToHex(digestBits[:])

	want := utils.HexSha3(nil)
	if got != want {
		t.Errorf("Hash256(pad(\"\")) = %s, want %s", got, want)
	}
}

// TestHash256MultiBlock exercises absorption across two rate blocks.
func TestHash256MultiBlock(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	data := make([]byte, pad.RateBytes+10)
	for i := range data {
		data[i] = byte(i)
	}
	paddedBits := pad.Bytes(data)
	if len(paddedBits) <= RateBits {
		t.Fatalf("test input should span at least two rate blocks")
	}

	input := make([]fhe.Ciphertext, len(paddedBits))
	for i, bit := range paddedBits {
		input[i] = sk.TrivialEncrypt(bit)
	}

	digestCt := Hash256(&sk, input)
	var digestBits [256]bool
	for i := range digestCt {
		digestBits[i] = ck.Decrypt(digestCt[i])
	}
	got := utils.BoolsToHex(digestBits[:])
	want := utils.HexSha3(data)
	if got != want {
		t.Errorf("Hash256(pad(data)) = %s, want %s", got, want)
	}
}
