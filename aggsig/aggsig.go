// Package aggsig compresses multiple Loquat signatures into a single
// aggregate: the sum of their sigma values mod p, plus a fresh random
// challenge carried in the struct but not consumed by verification.
//
// Security gap, by construction: verification compares the sum of the
// messages' reduced digests against the aggregated sigma. That is a linear
// consistency check, not a per-signer authentication binding. It does not
// involve the public keys beyond a length check, and a sum of honest
// signature responses sigma_i = sk_i ± m_i carries the signers' secret keys,
// so it does not in general equal the digest sum. Consumers needing real
// aggregate authentication must not rely on this check.
package aggsig

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math/big"

	"loquat-signature/digest"
	"loquat-signature/field"
	"loquat-signature/loquat"
)

// Signature is an aggregate of individual signature responses.
type Signature struct {
	AggregatedSigma *big.Int
	Challenge       *big.Int
}

// Scheme fixes the field and digest for aggregation.
type Scheme struct {
	f field.Field
	h digest.Hash
}

// NewScheme constructs an aggregate-signature scheme around the given digest.
func NewScheme(h digest.Hash) *Scheme {
	return &Scheme{f: field.New(), h: h}
}

// Aggregate sums the signatures' sigma values mod p and draws an independent
// challenge from [1, p) using rnd (crypto/rand when nil).
func (s *Scheme) Aggregate(signatures []*loquat.Signature, rnd io.Reader) (*Signature, error) {
	if rnd == nil {
		rnd = crand.Reader
	}
	challenge, err := field.RandomUnit(rnd, s.f.Modulus())
	if err != nil {
		return nil, fmt.Errorf("aggsig: draw challenge: %w", err)
	}
	sum := big.NewInt(0)
	for i, sig := range signatures {
		if sig == nil || sig.Sigma == nil {
			return nil, fmt.Errorf("aggsig: nil signature at index %d", i)
		}
		sum = s.f.Add(sum, s.f.Reduce(sig.Sigma))
	}
	return &Signature{AggregatedSigma: sum, Challenge: challenge}, nil
}

// Verify recomputes the sum of each message's reduced digest mod p and
// accepts iff it equals the aggregated sigma. publicKeys and messages must
// have equal length; a mismatch rejects immediately. It returns false (never
// an error) on malformed input.
func (s *Scheme) Verify(publicKeys [][]byte, messages [][]byte, agg *Signature) bool {
	if agg == nil || agg.AggregatedSigma == nil {
		return false
	}
	if len(publicKeys) != len(messages) {
		return false
	}
	sum := big.NewInt(0)
	for _, msg := range messages {
		d := s.h.Sum(msg)
		sum = s.f.Add(sum, s.f.Reduce(new(big.Int).SetBytes(d[:])))
	}
	return sum.Cmp(s.f.Reduce(agg.AggregatedSigma)) == 0
}
