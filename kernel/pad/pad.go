// Package pad implements the SHA3 pad10*1 multi-rate padding rule for both
// plaintext byte slices and encrypted bit-vectors, and its inverse.
//
// Grounded on original_source/homomorphic_functions/padding.rs.
package pad

import "github.com/summitto/fdexchange/fhe"

// RateBytes is the SHA3-256 absorption rate in bytes, 1088/8.
const RateBytes = 1088 / 8

// Bytes pads a plaintext byte slice to a multiple of RateBytes using the
// pad10*1 rule: a lone 0x86 suffix when exactly one byte is needed to
// complete a block, otherwise a 0x06 prefix, zero bytes, and a 0x80 suffix.
// It returns the LSB-first bit expansion of the padded bytes.
func Bytes(data []byte) []bool {
	padded := make([]byte, len(data), len(data)+RateBytes)
	copy(padded, data)

	if len(padded)%RateBytes == RateBytes-1 {
		padded = append(padded, 0x86)
	} else {
		padded = append(padded, 0x06)
		for len(padded)%RateBytes != RateBytes-1 {
			padded = append(padded, 0x00)
		}
		padded = append(padded, 0x80)
	}

	bits := make([]bool, len(padded)*8)
	for i, b := range padded {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = (b>>uint(j))&1 == 1
		}
	}
	return bits
}

// Cipher pads an encrypted bit-vector (length a multiple of 8) the same
// way as Bytes, using trivial encryptions for the padding bits.
func Cipher(sk *fhe.ServerKey, ct []fhe.Ciphertext) []fhe.Ciphertext {
	if len(ct)%8 != 0 {
		panic("pad: ciphertext length must be a multiple of 8")
	}
	nbBytes := len(ct) / 8

	out := make([]fhe.Ciphertext, len(ct), len(ct)+RateBytes*8)
	copy(out, ct)

	pushByte := func(b byte) {
		for i := 0; i < 8; i++ {
			out = append(out, sk.TrivialEncrypt((b>>uint(i))&1 == 1))
		}
	}

	if nbBytes%RateBytes == RateBytes-1 {
		pushByte(0x86)
	} else {
		pushByte(0x06)
		zeroByte := sk.TrivialEncrypt(false)
		for (len(out)/8)%RateBytes != RateBytes-1 {
			for i := 0; i < 8; i++ {
				out = append(out, zeroByte)
			}
		}
		pushByte(0x80)
	}
	return out
}

// UnpadBytes reverses Bytes: given LSB-first padded bits, it packs them
// into bytes and strips the pad10*1 trailer.
func UnpadBytes(paddedBits []bool) []byte {
	if len(paddedBits)%8 != 0 {
		panic("pad: bit length must be a multiple of 8")
	}
	bytes := make([]byte, len(paddedBits)/8)
	for i := range bytes {
		var b byte
		for j := 0; j < 8; j++ {
			if paddedBits[i*8+j] {
				b |= 1 << uint(j)
			}
		}
		bytes[i] = b
	}

	last := bytes[len(bytes)-1]
	switch last {
	case 0x86:
		return bytes[:len(bytes)-1]
	case 0x80:
		lastIndex := 1
		for bytes[len(bytes)-lastIndex] != 0x06 {
			lastIndex++
		}
		return bytes[:len(bytes)-lastIndex]
	default:
		panic("pad: invalid padding, did not find 0x86 or 0x80 at end")
	}
}
