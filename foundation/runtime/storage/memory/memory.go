// Package memory implements the ability to read and write block records to
// memory using a slice.
package memory

import (
	"errors"
	"sync"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/storage"
)

// Memory represents the storage implementation for reading and storing
// block records in memory using a slice. This implements the storage.Storage
// interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []storage.BlockRecord
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{}
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified block record and stores it in memory. Records
// must be written in block number order starting with block 1.
func (m *Memory) Write(record storage.BlockRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uint64(len(m.blocks))+1 != uint64(record.Number) {
		return errors.New("block is out of order")
	}

	m.blocks = append(m.blocks, record)

	return nil
}

// GetBlock returns the record for the specified block number.
func (m *Memory) GetBlock(num runtime.BlockNumber) (storage.BlockRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num == 0 || uint64(num) > uint64(len(m.blocks)) {
		return storage.BlockRecord{}, errors.New("block does not exist")
	}

	return m.blocks[num-1], nil
}

// ForEach returns an iterator to walk through all the blocks
// starting with block number 1.
func (m *Memory) ForEach() storage.Iterator {
	return &memoryIterator{storage: m, current: 1}
}

// Reset clears out every stored record.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = nil
	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through the stored records. This implements the storage.Iterator interface.
type memoryIterator struct {
	storage *Memory             // Access to the storage API.
	current runtime.BlockNumber // Current block number being iterated over.
	eoc     bool                // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block record.
func (mi *memoryIterator) Next() (storage.BlockRecord, error) {
	if mi.eoc {
		return storage.BlockRecord{}, errors.New("end of chain")
	}

	record, err := mi.storage.GetBlock(mi.current)
	if err != nil {
		mi.eoc = true
	}

	mi.current++

	return record, err
}

// Done returns the end of chain value.
func (mi *memoryIterator) Done() bool {
	return mi.eoc
}
