package state

import (
	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/genesis"
	"github.com/ardanlabs/pallets/foundation/runtime/storage"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy of the record of the latest block.
func (s *State) RetrieveLatestBlock() storage.BlockRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latestBlock
}

// RetrieveState returns a copy of the runtime storage and its state root.
func (s *State) RetrieveState() (runtime.State, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runtime.State(), s.runtime.StateRoot()
}

// Snapshot represents the runtime storage together with the record of the
// block that produced it.
type Snapshot struct {
	State       runtime.State
	StateRoot   string
	LatestBlock storage.BlockRecord
}

// RetrieveSnapshot returns a consistent copy of the runtime storage, its state
// root and the record of the latest block.
func (s *State) RetrieveSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		State:       s.runtime.State(),
		StateRoot:   s.runtime.StateRoot(),
		LatestBlock: s.latestBlock,
	}
}

// QueryBalance returns the balance of the account.
func (s *State) QueryBalance(account runtime.AccountID) runtime.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runtime.Balance(account)
}

// QueryNonce returns the nonce of the account.
func (s *State) QueryNonce(account runtime.AccountID) runtime.Nonce {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runtime.Nonce(account)
}

// QueryClaim returns the owner of the content and whether it is claimed.
func (s *State) QueryClaim(content runtime.Content) (runtime.AccountID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runtime.Claim(content)
}

// QueryBlock returns the record of the specified block.
func (s *State) QueryBlock(num runtime.BlockNumber) (storage.BlockRecord, error) {
	return s.storage.GetBlock(num)
}

// QueryBlocks returns the records of every executed block in order.
func (s *State) QueryBlocks() ([]storage.BlockRecord, error) {
	var out []storage.BlockRecord

	iter := s.storage.ForEach()
	for record, err := iter.Next(); !iter.Done(); record, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}

	return out, nil
}

// QueryProof returns the merkle proof that the extrinsic at the specified
// index is part of the specified block.
// Executed blocks never change so proofs are cached once built.
func (s *State) QueryProof(num runtime.BlockNumber, index int) (storage.ExtrinsicProof, error) {
	key := proofKey{number: num, index: index}
	if v, ok := s.proofs.Get(key); ok {
		return v.(storage.ExtrinsicProof), nil
	}

	record, err := s.storage.GetBlock(num)
	if err != nil {
		return storage.ExtrinsicProof{}, err
	}

	proof, err := record.Proof(index)
	if err != nil {
		return storage.ExtrinsicProof{}, err
	}
	s.proofs.Add(key, proof)

	return proof, nil
}

type proofKey struct {
	number runtime.BlockNumber
	index  int
}
