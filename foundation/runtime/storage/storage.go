// Package storage defines the record kept for every executed block and the
// behavior required to store those records.
package storage

import (
	"fmt"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/digest"
	"github.com/ardanlabs/pallets/foundation/runtime/merkle"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Storage interface represents the behavior required to be implemented by any
// package providing support for storing and reading executed blocks.
type Storage interface {
	Write(record BlockRecord) error
	GetBlock(num runtime.BlockNumber) (BlockRecord, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the blocks.
type Iterator interface {
	Next() (BlockRecord, error)
	Done() bool
}

// =============================================================================

// BlockRecord represents an executed block with the hashes that link it to
// its parent and the receipts of its extrinsics.
type BlockRecord struct {
	Number         runtime.BlockNumber   `json:"number"`
	Hash           string                `json:"hash"`
	PrevHash       string                `json:"prev_hash"`
	ExtrinsicsRoot string                `json:"extrinsics_root"`
	StateRoot      string                `json:"state_root"`
	Block          runtime.BlockData     `json:"block"`
	Receipts       []runtime.ReceiptData `json:"receipts"`
}

// NewBlockRecord constructs the record for a block that was executed on top
// of prev, leaving the runtime with the specified state root.
func NewBlockRecord(prev BlockRecord, block runtime.BlockData, receipts []runtime.ReceiptData, stateRoot string) BlockRecord {
	prevHash := digest.ZeroHash
	if prev.Number > 0 {
		prevHash = prev.Hash
	}

	br := BlockRecord{
		Number:         block.Header.BlockNumber,
		PrevHash:       prevHash,
		ExtrinsicsRoot: extrinsicsRoot(block.Extrinsics),
		StateRoot:      stateRoot,
		Block:          block,
		Receipts:       receipts,
	}
	br.Hash = br.hash()

	return br
}

// hash returns the unique hash for the record, computed over the number and
// the roots it commits to.
func (br BlockRecord) hash() string {
	if br.Number == 0 {
		return digest.ZeroHash
	}

	header := struct {
		Number         runtime.BlockNumber
		PrevHash       string
		ExtrinsicsRoot string
		StateRoot      string
	}{
		Number:         br.Number,
		PrevHash:       br.PrevHash,
		ExtrinsicsRoot: br.ExtrinsicsRoot,
		StateRoot:      br.StateRoot,
	}

	return digest.Hash(header)
}

// Proof returns the merkle proof that the extrinsic at the specified index is
// part of the block.
func (br BlockRecord) Proof(index int) (ExtrinsicProof, error) {
	tree, err := extrinsicsTree(br.Block.Extrinsics)
	if err != nil {
		return ExtrinsicProof{}, fmt.Errorf("block %d: %w", br.Number, err)
	}

	leaf, err := tree.Leaf(index)
	if err != nil {
		return ExtrinsicProof{}, fmt.Errorf("block %d: extrinsic %d: %w", br.Number, index, err)
	}

	proof, order, err := tree.Proof(index)
	if err != nil {
		return ExtrinsicProof{}, fmt.Errorf("block %d: extrinsic %d: %w", br.Number, index, err)
	}

	ep := ExtrinsicProof{
		Number:         br.Number,
		Index:          index,
		Leaf:           hexutil.Encode(leaf),
		ExtrinsicsRoot: tree.RootHex(),
		Proof:          make([]string, len(proof)),
		Order:          order,
	}
	for i, p := range proof {
		ep.Proof[i] = hexutil.Encode(p)
	}

	return ep, nil
}

// =============================================================================

// ExtrinsicProof is the set of hashes proving an extrinsic is part of a block.
type ExtrinsicProof struct {
	Number         runtime.BlockNumber `json:"number"`
	Index          int                 `json:"index"`
	Leaf           string              `json:"leaf"`
	ExtrinsicsRoot string              `json:"extrinsics_root"`
	Proof          []string            `json:"proof"`
	Order          []int64             `json:"order"`
}

// Verify checks the proof leads from the leaf to the extrinsics root.
func (ep ExtrinsicProof) Verify() error {
	leaf, err := hexutil.Decode(ep.Leaf)
	if err != nil {
		return fmt.Errorf("decoding leaf: %w", err)
	}

	root, err := hexutil.Decode(ep.ExtrinsicsRoot)
	if err != nil {
		return fmt.Errorf("decoding root: %w", err)
	}

	proof := make([][]byte, len(ep.Proof))
	for i, p := range ep.Proof {
		if proof[i], err = hexutil.Decode(p); err != nil {
			return fmt.Errorf("decoding proof %d: %w", i, err)
		}
	}

	return merkle.VerifyProof(digest.NewHasher, leaf, proof, ep.Order, root)
}

// =============================================================================

// extrinsic adds hashing to the extrinsic data for the merkle tree.
type extrinsic runtime.ExtrinsicData

// Hash implements the merkle Hashable interface.
func (e extrinsic) Hash() ([]byte, error) {
	return digest.Sum(runtime.ExtrinsicData(e))
}

func extrinsicsTree(exts []runtime.ExtrinsicData) (*merkle.Tree[extrinsic], error) {
	values := make([]extrinsic, len(exts))
	for i, ext := range exts {
		values[i] = extrinsic(ext)
	}

	return merkle.NewTree(values)
}

// extrinsicsRoot returns the merkle root of the extrinsics, or the zero hash
// for a block with no extrinsics.
func extrinsicsRoot(exts []runtime.ExtrinsicData) string {
	if len(exts) == 0 {
		return digest.ZeroHash
	}

	tree, err := extrinsicsTree(exts)
	if err != nil {
		return digest.ZeroHash
	}

	return tree.RootHex()
}
