// Package system implements the system pallet. It handles the low level state
// every runtime needs: the current block number and a nonce per account.
package system

import (
	"cmp"
	"fmt"

	"github.com/ardanlabs/pallets/foundation/runtime/support"
)

// Pallet maintains the block number and account nonces. A is the account
// identifier, B the block number and N the nonce type.
type Pallet[A cmp.Ordered, B support.Counter, N support.Counter] struct {
	blockNumber B
	nonce       map[A]N
}

// New constructs a system pallet at block zero with no known accounts.
func New[A cmp.Ordered, B support.Counter, N support.Counter]() *Pallet[A, B, N] {
	return &Pallet[A, B, N]{
		nonce: make(map[A]N),
	}
}

// BlockNumber returns the current block number.
func (p *Pallet[A, B, N]) BlockNumber() B {
	return p.blockNumber
}

// NextBlockNumber returns the block number the next executed block must carry.
// Running out of block numbers means the host is broken, so this panics.
func (p *Pallet[A, B, N]) NextBlockNumber() B {
	next, ok := support.CheckedAdd(p.blockNumber, 1)
	if !ok {
		panic(fmt.Sprintf("system: block number overflow at %d", p.blockNumber))
	}

	return next
}

// IncBlockNumber increases the block number by one.
func (p *Pallet[A, B, N]) IncBlockNumber() {
	p.blockNumber = p.NextBlockNumber()
}

// IncNonce increments the nonce of the specified account.
func (p *Pallet[A, B, N]) IncNonce(who A) {
	p.nonce[who] = p.nonce[who] + 1
}

// Nonce returns the nonce of the specified account, zero if the account has
// never originated an extrinsic.
func (p *Pallet[A, B, N]) Nonce(who A) N {
	return p.nonce[who]
}

// Nonces makes a copy of the nonce of every known account.
func (p *Pallet[A, B, N]) Nonces() map[A]N {
	nonces := make(map[A]N, len(p.nonce))
	for who, n := range p.nonce {
		nonces[who] = n
	}
	return nonces
}
