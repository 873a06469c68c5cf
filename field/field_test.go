package field

import (
	"errors"
	"math/big"
	"testing"

	"github.com/tuneinsight/lattigo/v4/utils"
)

func TestModulusValue(t *testing.T) {
	f := New()
	want := new(big.Int).Lsh(big.NewInt(1), 127)
	want.Sub(want, big.NewInt(1))
	if f.Modulus().Cmp(want) != 0 {
		t.Fatalf("modulus = %v want 2^127-1", f.Modulus())
	}
}

func TestAddSubMul(t *testing.T) {
	f := New()
	a := big.NewInt(10)
	b := big.NewInt(7)
	if got := f.Add(a, b); got.Cmp(big.NewInt(17)) != 0 {
		t.Fatalf("add = %v want 17", got)
	}
	if got := f.Sub(a, b); got.Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("sub = %v want 3", got)
	}
	if got := f.Mul(a, b); got.Cmp(big.NewInt(70)) != 0 {
		t.Fatalf("mul = %v want 70", got)
	}
	// wraparound cases
	p := f.Modulus()
	nearTop := new(big.Int).Sub(p, big.NewInt(2))
	if got := f.Add(nearTop, big.NewInt(5)); got.Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("add wrap = %v want 3", got)
	}
	if got := f.Sub(big.NewInt(5), big.NewInt(10)); got.Cmp(new(big.Int).Sub(p, big.NewInt(5))) != 0 {
		t.Fatalf("sub wrap = %v want p-5", got)
	}
}

// Mul must not lose precision on operands near the modulus:
// (p-1)^2 = 1 mod p.
func TestMulWideOperands(t *testing.T) {
	f := New()
	pm1 := new(big.Int).Sub(f.Modulus(), big.NewInt(1))
	if got := f.Mul(pm1, pm1); got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("(p-1)^2 = %v want 1", got)
	}
}

func TestPow(t *testing.T) {
	f := New()
	// pow(a, 0) = 1 for every a, including 0
	if got := f.Pow(big.NewInt(0), big.NewInt(0)); got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("0^0 = %v want 1", got)
	}
	if got := f.Pow(big.NewInt(10), big.NewInt(3)); got.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("10^3 = %v want 1000", got)
	}
	// 2 has order 127 in this Mersenne field: 2^126 stays below p, 2^127 = 1
	want := new(big.Int).Lsh(big.NewInt(1), 126)
	if got := f.Pow(big.NewInt(2), big.NewInt(126)); got.Cmp(want) != 0 {
		t.Fatalf("2^126 = %v want 2^126", got)
	}
	if got := f.Pow(big.NewInt(2), big.NewInt(127)); got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("2^127 = %v want 1", got)
	}
}

func TestInverse(t *testing.T) {
	f := New()
	for _, v := range []int64{1, 2, 7, 42, 123456789} {
		a := big.NewInt(v)
		inv, err := f.Inverse(a)
		if err != nil {
			t.Fatalf("inverse(%d): %v", v, err)
		}
		if got := f.Mul(a, inv); got.Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("%d * %d^-1 = %v want 1", v, v, got)
		}
	}
}

func TestInverseZero(t *testing.T) {
	f := New()
	if _, err := f.Inverse(big.NewInt(0)); !errors.Is(err, ErrNotInvertible) {
		t.Fatalf("inverse(0) err = %v want ErrNotInvertible", err)
	}
	// p = 0 mod p has no inverse either
	if _, err := f.Inverse(f.Modulus()); !errors.Is(err, ErrNotInvertible) {
		t.Fatalf("inverse(p) err = %v want ErrNotInvertible", err)
	}
}

func TestReduceCanonical(t *testing.T) {
	f := New()
	p := f.Modulus()
	big2 := new(big.Int).Add(new(big.Int).Mul(p, big.NewInt(3)), big.NewInt(11))
	if got := f.Reduce(big2); got.Cmp(big.NewInt(11)) != 0 {
		t.Fatalf("reduce = %v want 11", got)
	}
	if got := f.Reduce(big.NewInt(-1)); got.Cmp(new(big.Int).Sub(p, big.NewInt(1))) != 0 {
		t.Fatalf("reduce(-1) = %v want p-1", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := New()
	for _, v := range []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(123456789),
		new(big.Int).Sub(f.Modulus(), big.NewInt(1)),
	} {
		enc, err := f.Encode(v)
		if err != nil {
			t.Fatalf("encode(%v): %v", v, err)
		}
		if len(enc) != ElementSize {
			t.Fatalf("encoded length = %d want %d", len(enc), ElementSize)
		}
		dec, err := f.Decode(enc)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if dec.Cmp(v) != 0 {
			t.Fatalf("round trip = %v want %v", dec, v)
		}
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	f := New()
	if _, err := f.Decode(make([]byte, 15)); !errors.Is(err, ErrEncoding) {
		t.Fatalf("short decode err = %v want ErrEncoding", err)
	}
	if _, err := f.Decode(make([]byte, 17)); !errors.Is(err, ErrEncoding) {
		t.Fatalf("long decode err = %v want ErrEncoding", err)
	}
	// 2^127 - 1 itself is non-canonical
	enc, err := f.Encode(new(big.Int).Sub(f.Modulus(), big.NewInt(1)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	enc[15] |= 1 // bump p-1 to p
	if _, err := f.Decode(enc); !errors.Is(err, ErrEncoding) {
		t.Fatalf("non-canonical decode err = %v want ErrEncoding", err)
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	f := New()
	if _, err := f.Encode(f.Modulus()); !errors.Is(err, ErrEncoding) {
		t.Fatalf("encode(p) err = %v want ErrEncoding", err)
	}
	if _, err := f.Encode(big.NewInt(-1)); !errors.Is(err, ErrEncoding) {
		t.Fatalf("encode(-1) err = %v want ErrEncoding", err)
	}
}

func TestRandomUnitDeterministic(t *testing.T) {
	f := New()
	seed := []byte("field-random-unit-seed")
	prng1, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		t.Fatalf("keyed prng: %v", err)
	}
	prng2, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		t.Fatalf("keyed prng: %v", err)
	}
	a, err := RandomUnit(prng1, f.Modulus())
	if err != nil {
		t.Fatalf("random unit: %v", err)
	}
	b, err := RandomUnit(prng2, f.Modulus())
	if err != nil {
		t.Fatalf("random unit: %v", err)
	}
	if a.Cmp(b) != 0 {
		t.Fatalf("same seed drew %v and %v", a, b)
	}
	if a.Sign() <= 0 || a.Cmp(f.Modulus()) >= 0 {
		t.Fatalf("draw %v outside [1, p)", a)
	}
}

func TestRandomUnitRejectsBadInputs(t *testing.T) {
	f := New()
	if _, err := RandomUnit(nil, f.Modulus()); err == nil {
		t.Fatal("nil reader accepted")
	}
	prng, err := utils.NewKeyedPRNG([]byte("bound"))
	if err != nil {
		t.Fatalf("keyed prng: %v", err)
	}
	if _, err := RandomUnit(prng, big.NewInt(1)); err == nil {
		t.Fatal("bound 1 accepted")
	}
}
