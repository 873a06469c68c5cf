package digest

// Reduced sketches of the Poseidon and Griffin permutations over
// F_{2^127-1}, kept behind the same Hash interface so a vetted algebraic
// hash can replace them without touching callers. Both omit the MDS layers
// and round constants of the real constructions; they are deterministic and
// fixed-output but make no cryptographic claim.

import (
	"math/big"

	"loquat-signature/field"
)

const stateWidth = 3

// absorb loads up to stateWidth little-endian 16-byte chunks of input into a
// field-element state, zero-padding the tail.
func absorb(input []byte) [stateWidth]*big.Int {
	f := field.New()
	var state [stateWidth]*big.Int
	for i := 0; i < stateWidth; i++ {
		lo := i * 16
		if lo >= len(input) {
			state[i] = big.NewInt(0)
			continue
		}
		hi := lo + 16
		if hi > len(input) {
			hi = len(input)
		}
		chunk := input[lo:hi]
		// little-endian chunk interpretation
		be := make([]byte, len(chunk))
		for j, b := range chunk {
			be[len(chunk)-1-j] = b
		}
		state[i] = f.Reduce(new(big.Int).SetBytes(be))
	}
	return state
}

// squeeze emits the first two state elements as little-endian 16-byte words.
func squeeze(state [stateWidth]*big.Int) [Size]byte {
	var out [Size]byte
	for i := 0; i < 2; i++ {
		var be [16]byte
		state[i].FillBytes(be[:])
		for j := 0; j < 16; j++ {
			out[i*16+j] = be[15-j]
		}
	}
	return out
}

type poseidonHash struct{}

func (poseidonHash) Algorithm() Algorithm { return Poseidon }

func (poseidonHash) Sum(data []byte) [Size]byte {
	const (
		fullRounds    = 8
		partialRounds = 57
	)
	f := field.New()
	five := big.NewInt(5)
	state := absorb(data)
	for r := 0; r < fullRounds/2; r++ {
		for i := range state {
			state[i] = f.Pow(state[i], five)
		}
	}
	for r := 0; r < partialRounds; r++ {
		state[0] = f.Pow(state[0], five)
	}
	for r := 0; r < fullRounds/2; r++ {
		for i := range state {
			state[i] = f.Pow(state[i], five)
		}
	}
	return squeeze(state)
}

type griffinHash struct{}

func (griffinHash) Algorithm() Algorithm { return Griffin }

func (griffinHash) Sum(data []byte) [Size]byte {
	const rounds = 10
	f := field.New()
	sbox := big.NewInt(5)
	// Fixed odd exponent floor((p+1)/5) standing in for the inverse S-box.
	// 5 does not divide p+1, so this is not an exact inverse of x^5.
	invSbox := new(big.Int).Div(new(big.Int).Add(f.Modulus(), big.NewInt(1)), big.NewInt(5))
	state := absorb(data)
	for r := 0; r < rounds; r++ {
		exp := sbox
		if r%2 == 1 {
			exp = invSbox
		}
		for i := range state {
			state[i] = f.Pow(state[i], exp)
		}
		var snapshot [stateWidth]*big.Int
		copy(snapshot[:], state[:])
		for i := range state {
			state[i] = f.Add(snapshot[i], snapshot[(i+1)%stateWidth])
		}
	}
	return squeeze(state)
}
