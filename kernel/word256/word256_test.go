package word256

import (
	"testing"

	"github.com/summitto/fdexchange/fhe"
)

func samplePlain(seed int) Plain {
	var p Plain
	for i := range p {
		p[i] = (i*7+seed)%5 == 0
	}
	return p
}

func TestDigestRoundTrip(t *testing.T) {
	var digest [32]byte
	for i := range digest {
		digest[i] = byte(i*31 + 7)
	}
	p := PlainFromDigest(digest)
	got := DigestFromPlain(p)
	if got != digest {
		t.Errorf("DigestFromPlain(PlainFromDigest(d)) = %x, want %x", got, digest)
	}
}

func TestTrivialDecryptRoundTrip(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	p := samplePlain(1)
	c := Trivial(&sk, p)
	got := Decrypt(&ck, c)
	if got != p {
		t.Errorf("Decrypt(Trivial(p)) != p")
	}
}

func TestAddMatchesPlainAdd(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	a := samplePlain(1)
	b := samplePlain(2)

	ca, cb := Trivial(&sk, a), Trivial(&sk, b)
	sum := Decrypt(&ck, Add(&sk, ca, cb))
	want := PlainAdd(a, b)
	if sum != want {
		t.Errorf("Add(a,b) decrypted = %v, want %v", sum, want)
	}
}

func TestAddPlainMatchesPlainAdd(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	a := samplePlain(3)
	b := samplePlain(4)

	ca := Trivial(&sk, a)
	sum := Decrypt(&ck, AddPlain(&sk, ca, b))
	want := PlainAdd(a, b)
	if sum != want {
		t.Errorf("AddPlain(a,b) decrypted = %v, want %v", sum, want)
	}
}

func TestAddIsCommutativeAndHandlesZero(t *testing.T) {
	var zero Plain
	a := samplePlain(5)
	if PlainAdd(a, zero) != a {
		t.Errorf("PlainAdd(a, 0) != a")
	}
	b := samplePlain(6)
	if PlainAdd(a, b) != PlainAdd(b, a) {
		t.Errorf("PlainAdd is not commutative")
	}
}

func TestMulPlainByCipherMatchesPlainMul(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	a := samplePlain(1)
	p := samplePlain(2)

	ca := Trivial(&sk, a)
	got := Decrypt(&ck, MulPlainByCipher(&sk, ca, p))
	want := PlainMul(a, p)
	if got != want {
		t.Errorf("MulPlainByCipher decrypted does not match PlainMul")
	}
}

func TestMulByZeroAndOne(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	a := samplePlain(3)
	ca := Trivial(&sk, a)

	var zero, one Plain
	one[255] = true // big-endian weight 2^0

	gotZero := Decrypt(&ck, MulPlainByCipher(&sk, ca, zero))
	if gotZero != (Plain{}) {
		t.Errorf("a*0 should decrypt to the zero word, got %v", gotZero)
	}

	gotOne := Decrypt(&ck, MulPlainByCipher(&sk, ca, one))
	if gotOne != a {
		t.Errorf("a*1 should decrypt to a, got %v, want %v", gotOne, a)
	}
}

func TestMinusShiftRoundTrip(t *testing.T) {
	ck, sk, err := fhe.GenKeys()
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	a := samplePlain(4)
	ca := Trivial(&sk, a)

	neg := Decrypt(&ck, MinusShift(&sk, ca, 0))
	wantNeg := PlainMinusShift(a, 0)
	if neg != wantNeg {
		t.Errorf("MinusShift(a,0) decrypted does not match PlainMinusShift")
	}

	// a + (-a) == 0 mod 2^256
	sum := PlainAdd(a, neg)
	if sum != (Plain{}) {
		t.Errorf("a + (-a) should be the zero word, got %v", sum)
	}
}
