// Package prf implements the keyed Legendre pseudorandom function over
// F_{2^127-1}: the PRF bit at x is the quadratic residuosity of key + x.
package prf

import (
	"errors"
	"math/big"

	"loquat-signature/field"
)

// ErrZeroEvaluation is returned when the predicate is evaluated at a point
// where key + x = 0 mod p; the Legendre symbol is zero there and the PRF bit
// is undefined. Callers on the verification path treat this as "candidate
// does not match", not as a fatal condition.
var ErrZeroEvaluation = errors.New("prf: Legendre predicate undefined at zero")

var one = big.NewInt(1)

// PRF is the Legendre PRF keyed by a field element.
type PRF struct {
	f   field.Field
	key *big.Int
}

// New returns a PRF keyed by key, reduced into the field.
func New(key *big.Int) *PRF {
	f := field.New()
	return &PRF{f: f, key: f.Reduce(key)}
}

// Symbol returns the Legendre symbol of a modulo p: 0 for a = 0 mod p,
// 1 for a quadratic residue and -1 for a non-residue, computed as
// a^((p-1)/2) mod p.
func Symbol(a *big.Int) int {
	f := field.New()
	r := f.Reduce(a)
	if r.Sign() == 0 {
		return 0
	}
	exp := new(big.Int).Sub(f.Modulus(), one)
	exp.Rsh(exp, 1)
	if f.Pow(r, exp).Cmp(one) == 0 {
		return 1
	}
	return -1
}

// Evaluate returns the PRF bit at x: 0 when key + x is a quadratic residue,
// 1 when it is a non-residue. Evaluation is a pure function of (key, x).
func (p *PRF) Evaluate(x *big.Int) (uint8, error) {
	k := p.f.Add(p.key, x)
	switch Symbol(k) {
	case 1:
		return 0, nil
	case -1:
		return 1, nil
	default:
		return 0, ErrZeroEvaluation
	}
}
