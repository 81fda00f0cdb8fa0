// Package balances implements the balances pallet. It maintains a balance per
// account and moves funds between accounts.
package balances

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/ardanlabs/pallets/foundation/runtime/support"
)

// Set of errors a transfer can fail with.
var (
	ErrNotEnoughFunds = errors.New("Not enough funds")
	ErrOverflow       = errors.New("Overflow")
)

// Pallet maintains the balances of accounts. A is the account identifier and
// B the balance type. Accounts without an entry hold zero.
type Pallet[A cmp.Ordered, B support.Amount[B]] struct {
	balances map[A]B
}

// New constructs a balances pallet with no funded accounts.
func New[A cmp.Ordered, B support.Amount[B]]() *Pallet[A, B] {
	return &Pallet[A, B]{
		balances: make(map[A]B),
	}
}

// SetBalance sets the balance of an account. This is an administrative
// override used for genesis and performs no checks.
func (p *Pallet[A, B]) SetBalance(who A, amount B) {
	p.balances[who] = amount
}

// Balance returns the balance of an account.
func (p *Pallet[A, B]) Balance(who A) B {
	return p.balances[who]
}

// Balances makes a copy of every stored balance.
func (p *Pallet[A, B]) Balances() map[A]B {
	balances := make(map[A]B, len(p.balances))
	for who, amount := range p.balances {
		balances[who] = amount
	}
	return balances
}

// Transfer moves amount from the caller to the specified account. Either both
// balances change or neither does.
func (p *Pallet[A, B]) Transfer(caller A, to A, amount B) error {
	newCallerBalance, ok := p.Balance(caller).CheckedSub(amount)
	if !ok {
		return ErrNotEnoughFunds
	}

	newToBalance, ok := p.Balance(to).CheckedAdd(amount)
	if !ok {
		return ErrOverflow
	}

	// A self transfer has passed both checks and moves nothing.
	if caller == to {
		return nil
	}

	p.balances[caller] = newCallerBalance
	p.balances[to] = newToBalance

	return nil
}

// Dispatch routes a balances call made by the caller to the function that
// implements it.
func (p *Pallet[A, B]) Dispatch(caller A, call Call) error {
	switch c := call.(type) {
	case Transfer[A, B]:
		return p.Transfer(caller, c.To, c.Amount)
	}

	return fmt.Errorf("balances: %w: %T", support.ErrUnknownCall, call)
}
