// Package digest provides deterministic hashing of runtime values.
package digest

import (
	"encoding/json"
	"hash"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Sum returns the Keccak-256 hash of the value. The value is marshaled to
// JSON first, which orders map keys, so equal values always produce equal
// hashes.
func Sum(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return crypto.Keccak256(data), nil
}

// Hash returns the hex encoded Sum of the value, or the zero hash if the
// value can't be marshaled.
func Hash(value any) string {
	sum, err := Sum(value)
	if err != nil {
		return ZeroHash
	}

	return hexutil.Encode(sum)
}

// NewHasher returns a Keccak-256 hash.Hash.
func NewHasher() hash.Hash {
	return crypto.NewKeccakState()
}
