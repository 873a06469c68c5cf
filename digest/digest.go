// Package digest defines the hash capability consumed by the Loquat scheme:
// a deterministic map from an arbitrary byte string to a fixed 32-byte
// output. The algorithm choice is a closed enumeration; each algorithm is a
// separate implementation of the Hash interface, injected into scheme
// constructors.
package digest

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Size is the fixed output width in bytes.
const Size = 32

// Algorithm selects one of the supported hash backends.
type Algorithm int

const (
	// SHA3_256 is the default production algorithm.
	SHA3_256 Algorithm = iota
	// SHAKE128 is the SHAKE128 XOF truncated to a fixed 32-byte output.
	SHAKE128
	// Poseidon is a reduced sketch of the Poseidon permutation. Experimental:
	// it omits the MDS layer and round constants and carries no collision
	// resistance claim. Not production-grade.
	Poseidon
	// Griffin is a reduced sketch of the Griffin permutation. Experimental,
	// same caveats as Poseidon.
	Griffin
)

// ErrUnknownAlgorithm is returned for an unsupported algorithm selection.
var ErrUnknownAlgorithm = errors.New("digest: unknown algorithm")

// Hash maps a byte string to a fixed 32-byte output.
type Hash interface {
	Sum(data []byte) [Size]byte
	Algorithm() Algorithm
}

// New returns the Hash implementation for alg.
func New(alg Algorithm) (Hash, error) {
	switch alg {
	case SHA3_256:
		return sha3Hash{}, nil
	case SHAKE128:
		return shakeHash{}, nil
	case Poseidon:
		return poseidonHash{}, nil
	case Griffin:
		return griffinHash{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, alg)
	}
}

// Parse maps an algorithm name (as accepted by the CLI drivers) to its
// Algorithm value.
func Parse(name string) (Algorithm, error) {
	switch name {
	case "sha3-256":
		return SHA3_256, nil
	case "shake128":
		return SHAKE128, nil
	case "poseidon":
		return Poseidon, nil
	case "griffin":
		return Griffin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// String returns the canonical algorithm name.
func (a Algorithm) String() string {
	switch a {
	case SHA3_256:
		return "sha3-256"
	case SHAKE128:
		return "shake128"
	case Poseidon:
		return "poseidon"
	case Griffin:
		return "griffin"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

type sha3Hash struct{}

func (sha3Hash) Sum(data []byte) [Size]byte { return sha3.Sum256(data) }
func (sha3Hash) Algorithm() Algorithm       { return SHA3_256 }

type shakeHash struct{}

func (shakeHash) Sum(data []byte) [Size]byte {
	var out [Size]byte
	h := sha3.NewShake128()
	_, _ = h.Write(data)
	_, _ = h.Read(out[:])
	return out
}

func (shakeHash) Algorithm() Algorithm { return SHAKE128 }
