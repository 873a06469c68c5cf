package prf

import (
	"errors"
	"math/big"
	"testing"

	"loquat-signature/field"
)

// Known residues modulo p = 2^127 - 1: squares are residues; p = 7 mod 8 so
// 2 is a residue; quadratic reciprocity gives (5/p) = (p/5) = (2/5) = -1.
func TestSymbolKnownValues(t *testing.T) {
	cases := []struct {
		a    int64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{4, 1},
		{5, -1},
		{9, 1},
		{10, -1}, // 2 * 5
		{20, -1}, // 4 * 5
		{25, 1},  // 5 * 5
	}
	for _, c := range cases {
		if got := Symbol(big.NewInt(c.a)); got != c.want {
			t.Errorf("Symbol(%d) = %d want %d", c.a, got, c.want)
		}
	}
}

func TestSymbolMultiplicative(t *testing.T) {
	f := field.New()
	vals := []int64{2, 3, 4, 5, 7, 9, 11, 25, 123456}
	for _, a := range vals {
		for _, b := range vals {
			ab := f.Mul(big.NewInt(a), big.NewInt(b))
			if got, want := Symbol(ab), Symbol(big.NewInt(a))*Symbol(big.NewInt(b)); got != want {
				t.Errorf("Symbol(%d*%d) = %d want %d", a, b, got, want)
			}
		}
	}
}

func TestSymbolOfNegativeOne(t *testing.T) {
	// p = 3 mod 4, so -1 is a non-residue.
	f := field.New()
	pm1 := new(big.Int).Sub(f.Modulus(), big.NewInt(1))
	if got := Symbol(pm1); got != -1 {
		t.Fatalf("Symbol(p-1) = %d want -1", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	p := New(big.NewInt(12345))
	x := big.NewInt(67890)
	b1, err := p.Evaluate(x)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	b2, err := p.Evaluate(x)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if b1 != b2 {
		t.Fatalf("evaluate not deterministic: %d then %d", b1, b2)
	}
	if b1 != 0 && b1 != 1 {
		t.Fatalf("evaluate bit = %d want 0 or 1", b1)
	}
}

func TestEvaluateMatchesSymbol(t *testing.T) {
	f := field.New()
	key := big.NewInt(424242)
	p := New(key)
	for _, xv := range []int64{0, 1, 2, 5, 99999} {
		x := big.NewInt(xv)
		bit, err := p.Evaluate(x)
		if err != nil {
			t.Fatalf("evaluate(%d): %v", xv, err)
		}
		var want uint8
		if Symbol(f.Add(key, x)) == -1 {
			want = 1
		}
		if bit != want {
			t.Errorf("evaluate(%d) = %d want %d", xv, bit, want)
		}
	}
}

func TestEvaluateUndefinedAtZero(t *testing.T) {
	f := field.New()
	// key + x = 0 mod p
	key := new(big.Int).Sub(f.Modulus(), big.NewInt(5))
	p := New(key)
	if _, err := p.Evaluate(big.NewInt(5)); !errors.Is(err, ErrZeroEvaluation) {
		t.Fatalf("evaluate err = %v want ErrZeroEvaluation", err)
	}
}

func TestNewReducesKey(t *testing.T) {
	f := field.New()
	overP := new(big.Int).Add(f.Modulus(), big.NewInt(3))
	a := New(overP)
	b := New(big.NewInt(3))
	x := big.NewInt(7)
	ba, err := a.Evaluate(x)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	bb, err := b.Evaluate(x)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ba != bb {
		t.Fatalf("key reduction changed the PRF: %d vs %d", ba, bb)
	}
}
