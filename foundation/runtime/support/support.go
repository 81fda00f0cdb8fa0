// Package support provides the shared contracts every pallet is built on: the
// numeric constraints pallets are configured with, the shape of blocks and
// extrinsics, and the dispatch behavior the runtime implements.
package support

import (
	"errors"
)

// ErrUnknownCall is returned by a dispatcher that receives a call variant it
// does not own.
var ErrUnknownCall = errors.New("unknown call")

// =============================================================================

// Counter represents the set of unsigned integer types that can be used for
// values that only ever count upwards, like block numbers and nonces.
type Counter interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Amount represents the behavior a numeric type must exhibit to be used as a
// balance. The zero value of the type must represent zero.
type Amount[T any] interface {
	comparable
	CheckedAdd(T) (T, bool)
	CheckedSub(T) (T, bool)
}

// CheckedAdd returns a+b and false if the addition overflowed.
func CheckedAdd[N Counter](a N, b N) (N, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}

	return sum, true
}

// CheckedSub returns a-b and false if the subtraction underflowed.
func CheckedSub[N Counter](a N, b N) (N, bool) {
	if b > a {
		return 0, false
	}

	return a - b, true
}

// =============================================================================

// Header represents the information the block producer declares about a block.
type Header[B Counter] struct {
	BlockNumber B
}

// Extrinsic represents an externally submitted instruction: the account that
// originated it and the call it wants applied.
type Extrinsic[A any, C any] struct {
	Caller A
	Call   C
}

// Block represents a header and the ordered set of extrinsics to apply.
type Block[H any, E any] struct {
	Header     H
	Extrinsics []E
}

// =============================================================================

// Dispatch represents the behavior of routing a call on behalf of a caller to
// the pallet that owns it. A nil error means the call was fully applied, a
// non-nil error means nothing was changed.
type Dispatch[A any, C any] interface {
	Dispatch(caller A, call C) error
}
