package utils

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/hex"
	"testing"
)

func TestSha3_256KnownEmptyInput(t *testing.T) {
	// Cross-checked against golang.org/x/crypto/sha3's documented vector
	// for the empty string.
	got := Sha3_256(nil)
	want := []byte{
		0xa7, 0xff, 0xc6, 0xf8, 0xbf, 0x1e, 0xd7, 0x66,
		0x51, 0xc1, 0x47, 0x56, 0xa0, 0x61, 0xd6, 0x62,
		0xf5, 0x80, 0xff, 0x4d, 0xe4, 0x3b, 0x49, 0xfa,
		0x82, 0xd8, 0x0a, 0x4b, 0x80, 0xf8, 0x43, 0x4a,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Sha3_256(nil) = %x, want %x", got, want)
	}
}

func TestAssert(t *testing.T) {
	Assert(true, "should not panic")

	defer func() {
		if recover() == nil {
			t.Errorf("Assert(false, ...) should panic")
		}
	}()
	Assert(false, "expected panic")
}

func TestXorBytes(t *testing.T) {
	a := []byte{0xFF, 0x00, 0xAA}
	b := []byte{0x0F, 0xFF, 0x55}
	got := XorBytes(a, b)
	want := []byte{0xF0, 0xFF, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("XorBytes = %x, want %x", got, want)
	}
}

func TestXorBytesPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("XorBytes should panic on mismatched lengths")
		}
	}()
	XorBytes([]byte{1}, []byte{1, 2})
}

func TestConcat(t *testing.T) {
	got := Concat([]byte("foo"), []byte("bar"), nil, []byte("baz"))
	if string(got) != "foobarbaz" {
		t.Errorf("Concat = %q", got)
	}
}

func TestBytesBoolBitsRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x5A, 0x01}
	bits := BytesToBoolBitsLSB(data)
	if len(bits) != len(data)*8 {
		t.Fatalf("bit length = %d, want %d", len(bits), len(data)*8)
	}
	got := BoolBitsToBytesLSB(bits)
	if !bytes.Equal(got, data) {
		t.Errorf("BoolBitsToBytesLSB(BytesToBoolBitsLSB(data)) = %x, want %x", got, data)
	}
}

func TestBytesToBoolBitsLSBOrder(t *testing.T) {
	bits := BytesToBoolBitsLSB([]byte{0b0000_0001})
	if !bits[0] || bits[1] || bits[2] || bits[3] || bits[4] || bits[5] || bits[6] || bits[7] {
		t.Errorf("bit 0 should be the LSB of the byte, got %v", bits)
	}
}

func TestGetRandom(t *testing.T) {
	a := GetRandom(32)
	b := GetRandom(32)
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("GetRandom did not return the requested length")
	}
	if bytes.Equal(a, b) {
		t.Errorf("two calls to GetRandom(32) produced identical output")
	}
}

func TestRandIntBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandInt(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("RandInt(10,20) = %d, out of bounds", v)
		}
	}
}

func TestHumanBytes(t *testing.T) {
	if got := HumanBytes(0); got == "" {
		t.Errorf("HumanBytes(0) returned empty string")
	}
}

func TestBoolsToHexAndSha3HashFromBools(t *testing.T) {
	bits := BytesToBoolBitsLSB([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	if got, want := BoolsToHex(bits), "deadbeef"; got != want {
		t.Errorf("BoolsToHex = %s, want %s", got, want)
	}

	want := HexSha3([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	if got := Sha3HashFromBools(bits); got != want {
		t.Errorf("Sha3HashFromBools = %s, want %s", got, want)
	}
}

func TestSha3HashFromBoolsPadsPartialByte(t *testing.T) {
	// 4 bits, not a full byte: should pad with zero bits before hashing,
	// equivalent to hashing the single byte 0b0000_0101.
	bits := []bool{true, false, true, false}
	got := Sha3HashFromBools(bits)
	want := HexSha3([]byte{0b0000_0101})
	if got != want {
		t.Errorf("Sha3HashFromBools with a partial byte = %s, want %s", got, want)
	}
}

func TestHexSha3(t *testing.T) {
	want := hex.EncodeToString(Sha3_256([]byte("data")))
	got := HexSha3([]byte("data"))
	if got != want {
		t.Errorf("HexSha3 = %s, want %s", got, want)
	}
}

func TestECDSASignVerifyRoundTrip(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sig, err := ECDSASign(key, []byte("hello"), []byte("world"))
	if err != nil {
		t.Fatalf("ECDSASign: %v", err)
	}
	if !ECDSAVerify(&key.PublicKey, sig, []byte("hello"), []byte("world")) {
		t.Errorf("ECDSAVerify rejected a genuine signature")
	}
	if ECDSAVerify(&key.PublicKey, sig, []byte("hello"), []byte("mismatch")) {
		t.Errorf("ECDSAVerify accepted a signature over different data")
	}
}

func TestECDSAPubkeyToPEM(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pemBytes, err := ECDSAPubkeyToPEM(&key.PublicKey)
	if err != nil {
		t.Fatalf("ECDSAPubkeyToPEM: %v", err)
	}
	if !bytes.Contains(pemBytes, []byte("PUBLIC KEY")) {
		t.Errorf("ECDSAPubkeyToPEM did not produce a PEM-encoded public key block")
	}
}
