// Package sha3fhe evaluates Keccak-f[1600]/SHA3-256 gate-by-gate over
// encrypted lanes, so that a party holding only a ServerKey can hash data it
// cannot read.
//
// Grounded on original_source/homomorphic_functions/sha3_256_function.rs
// (RC table, absorb indexing, the theta/rho-pi/chi/iota loop structure) and,
// for the idiomatic Go lane-array shape, YolaYing-Expander-Sha256-gf2's
// keccak_gf2/main.go (keccakF, rotation-offset derivation).
package sha3fhe

import (
	"github.com/summitto/fdexchange/fhe"
	"github.com/summitto/fdexchange/kernel/lane64"
)

// NumRounds is n_r = 12 + 2*l = 24 for Keccak-f[1600].
const NumRounds = 24

// RateBits is the SHA3-256 absorption rate, 1088 bits (17 lanes).
const RateBits = 1088

// RC holds the round constants for the iota step, the output of the
// Keccak round-constant LFSR (Keccak spec §1.2/§2.3.5).
var RC = [NumRounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a,
	0x8000000080008000, 0x000000000000808b, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009, 0x000000000000008a,
	0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089,
	0x8000000000008003, 0x8000000000008002, 0x8000000000000080,
	0x000000000000800a, 0x800000008000000a, 0x8000000080008081,
	0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// State is the 5x5 array of 64-bit lanes that Keccak-f[1600] permutes.
type State [5][5]lane64.Lane

// Hash256 runs SHA3-256 over a padded encrypted bit-stream (a multiple of
// RateBits ciphertexts long) and returns the 256-bit digest, encrypted.
// Absorption indexes each 64-bit chunk of a rate block to lane (x, y) via
// x = j%5, y = j/5, matching the reference's flattening.
func Hash256(sk *fhe.ServerKey, input []fhe.Ciphertext) [256]fhe.Ciphertext {
	if len(input)%RateBits != 0 {
		panic("sha3fhe: input length must be a multiple of the rate")
	}

	var state State
	var zeroLane lane64.Lane
	for i := range zeroLane {
		zeroLane[i] = sk.TrivialEncrypt(false)
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			state[x][y] = zeroLane
		}
	}

	for block := 0; block < len(input); block += RateBits {
		for j := 0; j < RateBits/64; j++ {
			var lane lane64.Lane
			copy(lane[:], input[block+j*64:block+j*64+64])
			x, y := j%5, j/5
			state[x][y] = lane64.Xor(sk, state[x][y], lane)
		}
		keccakF1600(sk, &state)
	}

	var out [256]fhe.Ciphertext
	for k := 0; k < 256; k++ {
		x := (k / 64) % 5
		y := (k / 64) / 5
		z := k % 64
		out[k] = state[x][y][z]
	}
	return out
}

func keccakF1600(sk *fhe.ServerKey, state *State) {
	for r := 0; r < NumRounds; r++ {
		var c [5]lane64.Lane
		for x := 0; x < 5; x++ {
			c[x] = state[x][0]
			for y := 1; y < 5; y++ {
				c[x] = lane64.Xor(sk, c[x], state[x][y])
			}
		}

		var d [5]lane64.Lane
		for x := 0; x < 5; x++ {
			d[x] = lane64.Xor(sk, c[(x+4)%5], lane64.RotateRight(c[(x+1)%5], 1))
			for y := 0; y < 5; y++ {
				state[x][y] = lane64.Xor(sk, state[x][y], d[x])
			}
		}

		x, y := 1, 0
		current := state[x][y]
		for t := 0; t < 24; t++ {
			newX, newY := y, (2*x+3*y)%5
			tmp := state[newX][newY]
			state[newX][newY] = lane64.RotateRight(current, ((t+1)*(t+2)/2)%64)
			current = tmp
			x, y = newX, newY
		}

		for y := 0; y < 5; y++ {
			col := [5]lane64.Lane{state[0][y], state[1][y], state[2][y], state[3][y], state[4][y]}
			for x := 0; x < 5; x++ {
				notCx1 := lane64.Not(sk, col[(x+1)%5])
				andPart := lane64.And(sk, notCx1, col[(x+2)%5])
				state[x][y] = lane64.Xor(sk, col[x], andPart)
			}
		}

		var rcBits [64]bool
		for i := 0; i < 64; i++ {
			rcBits[i] = (RC[r]>>uint(i))&1 != 0
		}
		state[0][0] = lane64.XorWithPlain(sk, state[0][0], rcBits)
	}
}
