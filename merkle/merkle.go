// Package merkle implements the binary commitment tree used by the Loquat
// scheme. Adjacent nodes combine as Digest(be(a) || be(b)) reinterpreted as
// an integer; the result is deliberately not reduced modulo the field prime,
// so internal nodes (and the root) may exceed it. A layer with an odd node
// count carries its last node to the next layer unchanged rather than
// duplicating it; a single-leaf tree therefore has the leaf itself as root
// and an empty proof.
package merkle

import (
	"errors"
	"math/big"

	"loquat-signature/digest"
)

// ErrIndexOutOfRange is returned by GenerateProof for a leaf index outside
// the tree.
var ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")

// ProofNode is one step of an inclusion proof: the sibling value and whether
// the node being proven is the left operand of the combine.
type ProofNode struct {
	Sibling *big.Int
	IsLeft  bool
}

// Tree is a layered binary commitment tree over integer leaves. It is built
// once and read-only afterward.
type Tree struct {
	leaves []*big.Int
	layers [][]*big.Int
	h      digest.Hash
}

// New builds the tree bottom-up from the ordered leaf sequence.
func New(leaves []*big.Int, h digest.Hash) *Tree {
	var layers [][]*big.Int
	level := append([]*big.Int(nil), leaves...)
	for len(level) > 1 {
		next := make([]*big.Int, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, combine(level[i], level[i+1], h))
			} else {
				// odd node: carried forward unchanged
				next = append(next, level[i])
			}
		}
		layers = append(layers, level)
		level = next
	}
	if len(level) > 0 {
		layers = append(layers, level)
	}
	return &Tree{leaves: leaves, layers: layers, h: h}
}

// Root returns the top element of the final layer, or nil for an empty tree.
func (t *Tree) Root() *big.Int {
	if len(t.layers) == 0 {
		return nil
	}
	top := t.layers[len(t.layers)-1]
	return new(big.Int).Set(top[0])
}

// GenerateProof returns the sibling path for the leaf at index. Layers where
// the node has no sibling (the carried-forward case) contribute no entry.
func (t *Tree) GenerateProof(index int) ([]ProofNode, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, ErrIndexOutOfRange
	}
	proof := []ProofNode{}
	idx := index
	for _, level := range t.layers[:len(t.layers)-1] {
		sib := idx ^ 1
		if sib < len(level) {
			proof = append(proof, ProofNode{
				Sibling: new(big.Int).Set(level[sib]),
				IsLeft:  idx%2 == 0,
			})
		}
		idx /= 2
	}
	return proof, nil
}

// VerifyProof replays the combine along the proof path in the recorded
// left/right order and accepts iff the final value equals root.
func VerifyProof(root, leaf *big.Int, proof []ProofNode, h digest.Hash) bool {
	if root == nil || leaf == nil {
		return false
	}
	cur := leaf
	for _, n := range proof {
		if n.Sibling == nil {
			return false
		}
		if n.IsLeft {
			cur = combine(cur, n.Sibling, h)
		} else {
			cur = combine(n.Sibling, cur, h)
		}
	}
	return cur.Cmp(root) == 0
}

// combine hashes the minimal big-endian encodings of a and b and returns the
// digest reinterpreted as an integer, without field reduction.
func combine(a, b *big.Int, h digest.Hash) *big.Int {
	ab := a.Bytes()
	bb := b.Bytes()
	buf := make([]byte, 0, len(ab)+len(bb))
	buf = append(buf, ab...)
	buf = append(buf, bb...)
	sum := h.Sum(buf)
	return new(big.Int).SetBytes(sum[:])
}
