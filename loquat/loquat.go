// Package loquat implements the Legendre-PRF signature scheme from the
// CRYPTO 2024 paper "Loquat: A SNARK-Friendly Post-Quantum Signature Based on
// the Legendre PRF with Applications in Ring and Aggregate Signatures".
//
// A signature binds sigma = sk ± m (branch selected by the PRF bit at the
// reduced message digest m) to the message through a two-leaf Merkle
// commitment over [sigma, m]. The verifier is never told which branch the
// signer took: it reconstructs both candidate secret keys from the algebraic
// relation, disambiguates via public-key equality, and cross-checks the
// Merkle binding.
package loquat

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
	"loquat-signature/prf"
)

// KeyPair holds a signing key and its public commitment Digest(sk).
type KeyPair struct {
	SecretKey *big.Int
	PublicKey []byte
}

// Signature is the algebraic response together with the Merkle root binding
// it to the signed message. The root is the raw digest integer and may
// exceed the field modulus.
type Signature struct {
	Sigma      *big.Int
	MerkleRoot *big.Int
}

// Scheme fixes the field and the injected digest capability.
type Scheme struct {
	f field.Field
	h digest.Hash
}

// NewScheme constructs a scheme instance around the given digest.
func NewScheme(h digest.Hash) *Scheme {
	return &Scheme{f: field.New(), h: h}
}

// Field exposes the scheme's field descriptor.
func (s *Scheme) Field() field.Field { return s.f }

// Hash exposes the scheme's digest capability.
func (s *Scheme) Hash() digest.Hash { return s.h }

// Keygen draws a secret key uniformly from [1, p-1] using rnd and derives
// the public key as Digest(sk). A nil rnd falls back to crypto/rand.
func (s *Scheme) Keygen(rnd io.Reader) (*KeyPair, error) {
	if rnd == nil {
		rnd = crand.Reader
	}
	sk, err := field.RandomUnit(rnd, s.f.Modulus())
	if err != nil {
		return nil, fmt.Errorf("loquat: keygen: %w", err)
	}
	pk, err := s.hashElement(sk)
	if err != nil {
		return nil, fmt.Errorf("loquat: keygen: %w", err)
	}
	return &KeyPair{SecretKey: sk, PublicKey: pk}, nil
}

// Sign produces a signature on message under sk.
func (s *Scheme) Sign(sk *big.Int, message []byte) (*Signature, error) {
	if sk == nil {
		return nil, errors.New("loquat: nil secret key")
	}
	key := s.f.Reduce(sk)
	if key.Sign() == 0 {
		return nil, errors.New("loquat: secret key must be non-zero")
	}
	m := s.reduceMessage(message)
	bit, err := prf.New(key).Evaluate(m)
	if err != nil {
		return nil, fmt.Errorf("loquat: sign: %w", err)
	}
	sigma := branchSigma(s.f, key, m, bit)
	root := merkle.New([]*big.Int{sigma, m}, s.h).Root()
	return &Signature{Sigma: sigma, MerkleRoot: root}, nil
}

// Verify checks a signature against a public key and message. It enumerates
// the two branch candidates for the committed secret key in fixed order
// (subtraction-derived candidate first); a candidate on which the PRF is
// undefined is ruled out rather than treated as an error. Verification never
// fails with an error on attacker-supplied input: it returns false.
func (s *Scheme) Verify(pk []byte, message []byte, sig *Signature) bool {
	if len(pk) == 0 || sig == nil || sig.Sigma == nil || sig.MerkleRoot == nil {
		return false
	}
	m := s.reduceMessage(message)
	sigma := s.f.Reduce(sig.Sigma)
	candidates := []*big.Int{
		s.f.Sub(sigma, m), // as if the addition branch was taken
		s.f.Add(sigma, m), // as if the subtraction branch was taken
	}
	for _, cand := range candidates {
		pkCand, err := s.hashElement(cand)
		if err != nil || !bytes.Equal(pkCand, pk) {
			continue
		}
		bit, err := prf.New(cand).Evaluate(m)
		if err != nil {
			// predicate undefined at this candidate: it cannot have signed
			continue
		}
		sigmaExpected := branchSigma(s.f, cand, m, bit)
		expectedRoot := merkle.New([]*big.Int{sigmaExpected, m}, s.h).Root()
		return expectedRoot.Cmp(sig.MerkleRoot) == 0
	}
	return false
}

// reduceMessage maps a message to its field representative
// Digest(message) mod p.
func (s *Scheme) reduceMessage(message []byte) *big.Int {
	sum := s.h.Sum(message)
	return s.f.Reduce(new(big.Int).SetBytes(sum[:]))
}

// hashElement digests the fixed-width encoding of a field element.
func (s *Scheme) hashElement(a *big.Int) ([]byte, error) {
	enc, err := s.f.Encode(a)
	if err != nil {
		return nil, err
	}
	sum := s.h.Sum(enc)
	return sum[:], nil
}

// branchSigma applies the signing branch convention: addition when the PRF
// bit is 1, subtraction when it is 0.
func branchSigma(f field.Field, sk, m *big.Int, bit uint8) *big.Int {
	if bit == 1 {
		return f.Add(sk, m)
	}
	return f.Sub(sk, m)
}
