// Package state is the core API for the node. It owns the runtime, serializes
// access to it and keeps the history of executed blocks.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/genesis"
	"github.com/ardanlabs/pallets/foundation/runtime/storage"
	lru "github.com/hashicorp/golang-lru"
)

// ErrMalformedBlock is returned when submitted block data can't be converted
// into a block.
var ErrMalformedBlock = errors.New("malformed block")

// ErrHistoryDiverged is returned once an executed block could not be written
// to storage. The runtime is ahead of the history from then on and the node
// refuses every further block until it is restarted.
var ErrHistoryDiverged = errors.New("block history diverged from the runtime")

// proofCacheSize is the number of extrinsic proofs kept in memory.
const proofCacheSize = 1024

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the node state.
type Config struct {
	Genesis   genesis.Genesis
	Storage   storage.Storage
	EvHandler EventHandler
}

// State manages the runtime and the record of executed blocks.
type State struct {
	mu sync.Mutex

	genesis     genesis.Genesis
	evHandler   EventHandler
	latestBlock storage.BlockRecord
	diverged    error

	runtime *runtime.Runtime
	storage storage.Storage
	proofs  *lru.ARCCache
}

// New constructs the node state, applying the genesis to a new runtime.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}

	// Start from an empty history since the runtime starts at block zero.
	if err := cfg.Storage.Reset(); err != nil {
		return nil, fmt.Errorf("resetting storage: %w", err)
	}

	proofs, err := lru.NewARC(proofCacheSize)
	if err != nil {
		return nil, fmt.Errorf("constructing proof cache: %w", err)
	}

	rt := runtime.New(runtime.Config{
		Genesis:   cfg.Genesis,
		EvHandler: runtime.EventHandler(ev),
	})

	state := State{
		genesis:   cfg.Genesis,
		evHandler: ev,
		runtime:   rt,
		storage:   cfg.Storage,
		proofs:    proofs,
	}

	return &state, nil
}

// Shutdown cleanly brings the node state down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: close storage")
	return s.storage.Close()
}

// Healthy returns the error that stopped the node from accepting blocks, if
// any.
func (s *State) Healthy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.diverged
}

// SubmitBlock converts the block data into a block and executes it. A
// rejected block leaves the state untouched and returns the error. An
// executed block is recorded and returned with the receipts of its
// extrinsics, successful or not. A block that executes but can't be recorded
// returns ErrHistoryDiverged, as does every later call.
func (s *State) SubmitBlock(bd runtime.BlockData) (storage.BlockRecord, error) {
	block, err := runtime.ToBlock(bd)
	if err != nil {
		return storage.BlockRecord{}, fmt.Errorf("%w: %w", ErrMalformedBlock, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.diverged != nil {
		return storage.BlockRecord{}, s.diverged
	}

	s.evHandler("state: SubmitBlock: started: blk[%d]: numExt[%d]", bd.Header.BlockNumber, len(bd.Extrinsics))

	receipts, err := s.runtime.ApplyBlock(block)
	if err != nil {
		return storage.BlockRecord{}, err
	}

	record := storage.NewBlockRecord(s.latestBlock, bd, runtime.NewReceiptsData(receipts), s.runtime.StateRoot())

	// The runtime has already moved to this block and can't be rolled back.
	if err := s.storage.Write(record); err != nil {
		s.diverged = fmt.Errorf("%w: writing block %d: %w", ErrHistoryDiverged, record.Number, err)
		s.evHandler("state: SubmitBlock: FATAL: %s", s.diverged)
		return storage.BlockRecord{}, s.diverged
	}
	s.latestBlock = record

	s.blockEvent(record)

	return record, nil
}

// =============================================================================

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(record storage.BlockRecord) {
	receiptsJSON, err := json.Marshal(record.Receipts)
	if err != nil {
		receiptsJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: {"number":%d,"hash":%q,"state_root":%q,"receipts":%s}`, record.Number, record.Hash, record.StateRoot, string(receiptsJSON))
}
