// Package ringsig derives a ring-signature variant from the Loquat
// primitives: the ring is committed as the Merkle root over the ordered
// members' public keys (interpreted as integers), and sigma folds the secret
// key, the reduced message digest and a fresh random challenge.
//
// Security gap, by construction: verification checks that the stated ring
// matches the commitment, that sigma is a canonical field element, and that
// the value recovered from the algebraic relation hashes to some ring
// member. It is not a zero-knowledge membership proof; the challenge is
// signer-chosen and nothing hides which member the relation resolves to.
// Consumers must not rely on this for anonymity.
package ringsig

import (
	"bytes"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"loquat-signature/digest"
	"loquat-signature/field"
	"loquat-signature/merkle"
)

// Signature is a ring signature: the response, the commitment to the ring,
// and the challenge drawn at signing time.
type Signature struct {
	Sigma          *big.Int
	RingCommitment *big.Int
	Challenge      *big.Int
}

// Scheme fixes the field and digest for ring signing.
type Scheme struct {
	f field.Field
	h digest.Hash
}

// NewScheme constructs a ring-signature scheme around the given digest.
func NewScheme(h digest.Hash) *Scheme {
	return &Scheme{f: field.New(), h: h}
}

// Sign produces a ring signature on message under sk for the ordered ring
// publicKeys. signerIndex must locate the signer's own key within the ring.
// The challenge is drawn uniformly from [1, p-1) using rnd (crypto/rand when
// nil).
func (s *Scheme) Sign(sk *big.Int, message []byte, publicKeys [][]byte, signerIndex int, rnd io.Reader) (*Signature, error) {
	if sk == nil {
		return nil, errors.New("ringsig: nil secret key")
	}
	if len(publicKeys) == 0 {
		return nil, errors.New("ringsig: empty ring")
	}
	if signerIndex < 0 || signerIndex >= len(publicKeys) {
		return nil, fmt.Errorf("ringsig: signer index %d outside ring of %d", signerIndex, len(publicKeys))
	}
	if rnd == nil {
		rnd = crand.Reader
	}
	commitment := s.ringCommitment(publicKeys)
	bound := new(big.Int).Sub(s.f.Modulus(), big.NewInt(1))
	challenge, err := field.RandomUnit(rnd, bound)
	if err != nil {
		return nil, fmt.Errorf("ringsig: draw challenge: %w", err)
	}
	m := s.reduceMessage(message)
	sigma := s.f.Add(s.f.Add(s.f.Reduce(sk), m), challenge)
	return &Signature{
		Sigma:          sigma,
		RingCommitment: commitment,
		Challenge:      challenge,
	}, nil
}

// Verify checks a ring signature: the recomputed Merkle root over publicKeys
// must equal the commitment, sigma must be a canonical field element, and
// the recovered value sigma - m - challenge must hash to one of the ring
// members' public keys. It returns false (never an error) on malformed
// input.
func (s *Scheme) Verify(publicKeys [][]byte, message []byte, rs *Signature) bool {
	if rs == nil || rs.Sigma == nil || rs.RingCommitment == nil || rs.Challenge == nil {
		return false
	}
	if len(publicKeys) == 0 {
		return false
	}
	if rs.Sigma.Sign() < 0 || rs.Sigma.Cmp(s.f.Modulus()) >= 0 {
		return false
	}
	expected := s.ringCommitment(publicKeys)
	if expected.Cmp(rs.RingCommitment) != 0 {
		return false
	}
	m := s.reduceMessage(message)
	recovered := s.f.Sub(s.f.Sub(rs.Sigma, m), rs.Challenge)
	enc, err := s.f.Encode(recovered)
	if err != nil {
		return false
	}
	sum := s.h.Sum(enc)
	for _, pk := range publicKeys {
		if bytes.Equal(sum[:], pk) {
			return true
		}
	}
	return false
}

// ringCommitment is the Merkle root over the ordered public keys interpreted
// as big-endian integers.
func (s *Scheme) ringCommitment(publicKeys [][]byte) *big.Int {
	leaves := make([]*big.Int, len(publicKeys))
	for i, pk := range publicKeys {
		leaves[i] = new(big.Int).SetBytes(pk)
	}
	return merkle.New(leaves, s.h).Root()
}

func (s *Scheme) reduceMessage(message []byte) *big.Int {
	sum := s.h.Sum(message)
	return s.f.Reduce(new(big.Int).SetBytes(sum[:]))
}
