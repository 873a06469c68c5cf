package field

import (
	"errors"
	"fmt"
	"math/big"
)

// ElementSize is the fixed width of an encoded field element. p has 127 bits,
// so every canonical element fits in 16 big-endian bytes.
const ElementSize = 16

// ErrEncoding is returned (wrapped) for malformed byte lengths and
// non-canonical values on decode, and for out-of-range values on encode.
var ErrEncoding = errors.New("field: malformed element encoding")

// Encode serializes a canonical field element to a fixed-width big-endian
// byte string.
func (f Field) Encode(a *big.Int) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil element", ErrEncoding)
	}
	if a.Sign() < 0 || a.Cmp(f.p) >= 0 {
		return nil, fmt.Errorf("%w: value outside [0, p)", ErrEncoding)
	}
	return a.FillBytes(make([]byte, ElementSize)), nil
}

// Decode parses a fixed-width big-endian byte string into a canonical field
// element, rejecting wrong lengths and values >= p.
func (f Field) Decode(b []byte) (*big.Int, error) {
	if len(b) != ElementSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrEncoding, len(b), ElementSize)
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(f.p) >= 0 {
		return nil, fmt.Errorf("%w: value exceeds modulus", ErrEncoding)
	}
	return v, nil
}
