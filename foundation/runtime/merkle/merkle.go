// Package merkle provides a merkle tree over the ordered values of a block so
// a single value can be proven to be part of it.
package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"hash"

	"github.com/ardanlabs/pallets/foundation/runtime/digest"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Set of error variables for building and proving trees.
var (
	ErrNoContent     = errors.New("cannot construct tree with no content")
	ErrIndexNotFound = errors.New("index is not in the tree")
	ErrInvalidProof  = errors.New("proof does not lead to the merkle root")
)

// Order values tell a verifier where a proof hash goes in the concatenation.
const (
	ProofFirst  int64 = 0
	ProofSecond int64 = 1
)

// Hashable represents the behavior concrete data must exhibit to be used in
// the merkle tree.
type Hashable interface {
	Hash() ([]byte, error)
}

// =============================================================================

// Tree represents a merkle tree over an ordered list of values. Leaves are
// addressed by their position so equal values at different positions can be
// proven independently.
type Tree[T Hashable] struct {
	values       []T
	levels       [][][]byte
	hashStrategy func() hash.Hash
}

// WithHashStrategy is used to change the default hash strategy of using
// Keccak-256 when constructing a new tree.
func WithHashStrategy[T Hashable](hashStrategy func() hash.Hash) func(t *Tree[T]) {
	return func(t *Tree[T]) {
		t.hashStrategy = hashStrategy
	}
}

// NewTree constructs a new merkle tree for the values in order.
func NewTree[T Hashable](values []T, options ...func(t *Tree[T])) (*Tree[T], error) {
	t := Tree[T]{
		hashStrategy: digest.NewHasher,
	}

	for _, option := range options {
		option(&t)
	}

	if len(values) == 0 {
		return nil, ErrNoContent
	}

	leaves := make([][]byte, len(values))
	for i, value := range values {
		h, err := value.Hash()
		if err != nil {
			return nil, fmt.Errorf("hashing value %d: %w", i, err)
		}
		leaves[i] = h
	}

	t.values = values
	t.levels = [][][]byte{leaves}

	// An odd node at the end of a level is paired with itself.
	for level := leaves; len(level) > 1; {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := i + 1
			if right == len(level) {
				right = i
			}
			next = append(next, t.join(level[i], level[right]))
		}
		t.levels = append(t.levels, next)
		level = next
	}

	return &t, nil
}

// Root returns the merkle root.
func (t *Tree[T]) Root() []byte {
	return t.levels[len(t.levels)-1][0]
}

// RootHex converts the merkle root byte hash to a hex encoded string.
func (t *Tree[T]) RootHex() string {
	return hexutil.Encode(t.Root())
}

// Values returns the values the tree was built from.
func (t *Tree[T]) Values() []T {
	return t.values
}

// Leaf returns the hash of the value at the specified index.
func (t *Tree[T]) Leaf(index int) ([]byte, error) {
	if index < 0 || index >= len(t.values) {
		return nil, ErrIndexNotFound
	}

	return t.levels[0][index], nil
}

// Proof returns the set of hashes and the order of concatenating those hashes
// that lead from the value at the specified index to the root. An order of
// ProofFirst means the proof hash comes first in the concatenation.
func (t *Tree[T]) Proof(index int) ([][]byte, []int64, error) {
	if index < 0 || index >= len(t.values) {
		return nil, nil, ErrIndexNotFound
	}

	var proof [][]byte
	var order []int64

	for _, level := range t.levels[:len(t.levels)-1] {
		if index%2 == 0 {
			sibling := index + 1
			if sibling == len(level) {
				sibling = index
			}
			proof = append(proof, level[sibling])
			order = append(order, ProofSecond)
		} else {
			proof = append(proof, level[index-1])
			order = append(order, ProofFirst)
		}
		index /= 2
	}

	return proof, order, nil
}

// Verify walks the proof from the leaf hash and checks it ends at the root.
func (t *Tree[T]) Verify(leaf []byte, proof [][]byte, order []int64) error {
	return VerifyProof(t.hashStrategy, leaf, proof, order, t.Root())
}

func (t *Tree[T]) join(left []byte, right []byte) []byte {
	return join(t.hashStrategy, left, right)
}

// =============================================================================

// VerifyProof checks the proof for the leaf hash leads to the specified root
// using the specified hash strategy.
func VerifyProof(hashStrategy func() hash.Hash, leaf []byte, proof [][]byte, order []int64, root []byte) error {
	if len(proof) != len(order) {
		return fmt.Errorf("%w: %d hashes with %d orders", ErrInvalidProof, len(proof), len(order))
	}

	sum := leaf
	for i, p := range proof {
		switch order[i] {
		case ProofFirst:
			sum = join(hashStrategy, p, sum)
		case ProofSecond:
			sum = join(hashStrategy, sum, p)
		default:
			return fmt.Errorf("%w: unknown order %d", ErrInvalidProof, order[i])
		}
	}

	if !bytes.Equal(sum, root) {
		return ErrInvalidProof
	}

	return nil
}

func join(hashStrategy func() hash.Hash, left []byte, right []byte) []byte {
	h := hashStrategy()
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}
