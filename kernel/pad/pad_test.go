package pad

import (
	"bytes"
	"testing"

	"github.com/summitto/fdexchange/fhe"
)

// referenceVector is the 16-byte sample used in
// original_source/homomorphic_functions/padding.rs's tests.
var referenceVector = []byte{62, 33, 1, 29, 45, 1, 2, 7, 1, 0, 9, 46, 61, 1, 33, 22}

func bitsToBytes(bits []bool) []byte {
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

func TestBytesUnpadRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x01},
		referenceVector,
		make([]byte, RateBytes-1),
		make([]byte, RateBytes),
		make([]byte, RateBytes+5),
		make([]byte, 2*RateBytes),
	}
	for _, data := range cases {
		padded := Bytes(data)
		if len(padded)%8 != 0 {
			t.Fatalf("padded bit length %d is not a multiple of 8", len(padded))
		}
		if (len(padded)/8)%RateBytes != 0 {
			t.Fatalf("padded byte length %d is not a multiple of the rate", len(padded)/8)
		}
		got := UnpadBytes(padded)
		if len(got) != len(data) && !(len(got) == 0 && len(data) == 0) {
			t.Fatalf("UnpadBytes(Bytes(%v)) length = %d, want %d", data, len(got), len(data))
		}
		if !bytes.Equal(got, data) && len(data) != 0 {
			t.Errorf("UnpadBytes(Bytes(%v)) = %v, want %v", data, got, data)
		}
	}
}

func TestBytesReferenceVectorLength(t *testing.T) {
	padded := Bytes(referenceVector)
	if len(padded)/8 != RateBytes {
		t.Errorf("padded length = %d bytes, want %d", len(padded)/8, RateBytes)
	}
}

func TestCipherMatchesBytesPadding(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	wantBits := Bytes(referenceVector)

	rawBits := make([]bool, len(referenceVector)*8)
	for i, b := range referenceVector {
		for j := 0; j < 8; j++ {
			rawBits[i*8+j] = (b>>uint(j))&1 == 1
		}
	}
	ct := make([]fhe.Ciphertext, len(rawBits))
	for i, bit := range rawBits {
		ct[i] = sk.TrivialEncrypt(bit)
	}

	paddedCt := Cipher(&sk, ct)
	if len(paddedCt) != len(wantBits) {
		t.Fatalf("Cipher padded length = %d, want %d", len(paddedCt), len(wantBits))
	}
	for i := range wantBits {
		if got := ck.Decrypt(paddedCt[i]); got != wantBits[i] {
			t.Fatalf("Cipher padded bit %d = %v, want %v", i, got, wantBits[i])
		}
	}

	// Sanity: the original data bytes survive untouched at the front of both.
	prefix := wantBits[:len(referenceVector)*8]
	if !bytes.Equal(bitsToBytes(prefix), referenceVector) {
		t.Errorf("Bytes() prefix does not preserve the original data")
	}
}

func TestUnpadBytesRejectsGarbage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("UnpadBytes should panic on a trailer that is neither 0x86 nor 0x80")
		}
	}()
	garbage := make([]bool, 8)
	for i := range garbage {
		garbage[i] = true // packs to 0xFF, not a valid pad10*1 trailer
	}
	UnpadBytes(garbage)
}
