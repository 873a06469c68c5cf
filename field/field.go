// Package field implements arithmetic over the prime field F_p with
// p = 2^127 - 1, the Mersenne prime used by the Legendre PRF. The modulus is
// fixed; other moduli are not supported. Elements are *big.Int values kept in
// canonical form [0, p) by every operation.
package field

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrNotInvertible is returned when a modular inverse is requested for an
// element congruent to zero.
var ErrNotInvertible = errors.New("field: element is not invertible")

var (
	one   = big.NewInt(1)
	prime = func() *big.Int {
		p := new(big.Int).Lsh(big.NewInt(1), 127)
		return p.Sub(p, one)
	}()
)

// Field exposes arithmetic modulo the fixed prime p = 2^127 - 1.
type Field struct {
	p *big.Int
}

// New constructs the field descriptor.
func New() Field {
	return Field{p: prime}
}

// Modulus returns a copy of p.
func (f Field) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

// Reduce maps an arbitrary integer to its canonical representative in [0, p).
func (f Field) Reduce(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, f.p)
}

// Add returns (a + b) mod p.
func (f Field) Add(a, b *big.Int) *big.Int {
	s := new(big.Int).Add(a, b)
	return s.Mod(s, f.p)
}

// Sub returns (a - b) mod p.
func (f Field) Sub(a, b *big.Int) *big.Int {
	d := new(big.Int).Sub(a, b)
	return d.Mod(d, f.p)
}

// Mul returns (a * b) mod p. The product is formed at full width before
// reduction, so inputs of any magnitude are safe.
func (f Field) Mul(a, b *big.Int) *big.Int {
	m := new(big.Int).Mul(a, b)
	return m.Mod(m, f.p)
}

// Pow returns base^exp mod p by square-and-multiply. The exponent is treated
// as an unsigned integer of arbitrary size; Pow(a, 0) = 1 for every a,
// including 0.
func (f Field) Pow(base, exp *big.Int) *big.Int {
	res := big.NewInt(1)
	b := f.Reduce(base)
	e := new(big.Int).Abs(exp)
	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			res = f.Mul(res, b)
		}
		b = f.Mul(b, b)
		e.Rsh(e, 1)
	}
	return res
}

// Inverse returns the unique x with a*x = 1 mod p, computed by the extended
// Euclidean algorithm. The only element without an inverse is zero, for which
// ErrNotInvertible is returned.
func (f Field) Inverse(a *big.Int) (*big.Int, error) {
	r := f.Reduce(a)
	if r.Sign() == 0 {
		return nil, ErrNotInvertible
	}
	oldR, curR := r, new(big.Int).Set(f.p)
	oldS, curS := big.NewInt(1), big.NewInt(0)
	for curR.Sign() != 0 {
		q := new(big.Int).Quo(oldR, curR)
		oldR, curR = curR, new(big.Int).Sub(oldR, new(big.Int).Mul(q, curR))
		oldS, curS = curS, new(big.Int).Sub(oldS, new(big.Int).Mul(q, curS))
	}
	if oldR.Cmp(one) != 0 {
		return nil, ErrNotInvertible
	}
	return oldS.Mod(oldS, f.p), nil
}

// RandomUnit draws a uniform element of [1, max) from rnd by rejection
// sampling. Callers pass the field modulus for a uniform non-zero element,
// or a smaller bound where the protocol requires one.
func RandomUnit(rnd io.Reader, max *big.Int) (*big.Int, error) {
	if rnd == nil {
		return nil, errors.New("field: nil randomness source")
	}
	if max == nil || max.Cmp(one) <= 0 {
		return nil, fmt.Errorf("field: invalid sampling bound %v", max)
	}
	bits := max.BitLen()
	nbytes := (bits + 7) / 8
	buf := make([]byte, nbytes)
	const maxTries = 1 << 12
	for try := 0; try < maxTries; try++ {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, fmt.Errorf("field: read randomness: %w", err)
		}
		buf[0] &= 0xff >> (8*nbytes - bits)
		v := new(big.Int).SetBytes(buf)
		if v.Sign() != 0 && v.Cmp(max) < 0 {
			return v, nil
		}
	}
	return nil, errors.New("field: rejection sampling exhausted")
}
