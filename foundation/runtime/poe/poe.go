// Package poe implements the proof of existence pallet. Accounts claim
// ownership of opaque content and can later revoke their claims.
package poe

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/pallets/foundation/runtime/support"
)

// Set of errors claim operations can fail with.
var (
	ErrAlreadyClaimed = errors.New("this content is already claimed")
	ErrNoClaim        = errors.New("claim does not exist")
	ErrNotOwner       = errors.New("this content is owned by someone else")
)

// Pallet maintains the owner of every claimed piece of content. A is the
// account identifier and C the content type.
type Pallet[A comparable, C comparable] struct {
	claims map[C]A
}

// New constructs a pallet with nothing claimed.
func New[A comparable, C comparable]() *Pallet[A, C] {
	return &Pallet[A, C]{
		claims: make(map[C]A),
	}
}

// GetClaim returns the owner of the content and whether it is claimed.
func (p *Pallet[A, C]) GetClaim(claim C) (A, bool) {
	owner, exists := p.claims[claim]
	return owner, exists
}

// Claims makes a copy of every claim.
func (p *Pallet[A, C]) Claims() map[C]A {
	claims := make(map[C]A, len(p.claims))
	for claim, owner := range p.claims {
		claims[claim] = owner
	}
	return claims
}

// CreateClaim records the caller as the owner of unclaimed content.
func (p *Pallet[A, C]) CreateClaim(caller A, claim C) error {
	if _, exists := p.claims[claim]; exists {
		return ErrAlreadyClaimed
	}

	p.claims[claim] = caller
	return nil
}

// RevokeClaim removes a claim owned by the caller.
func (p *Pallet[A, C]) RevokeClaim(caller A, claim C) error {
	owner, exists := p.claims[claim]
	if !exists {
		return ErrNoClaim
	}

	if owner != caller {
		return ErrNotOwner
	}

	delete(p.claims, claim)
	return nil
}

// Dispatch routes a proof of existence call made by the caller to the
// function that implements it.
func (p *Pallet[A, C]) Dispatch(caller A, call Call) error {
	switch c := call.(type) {
	case CreateClaim[C]:
		return p.CreateClaim(caller, c.Claim)
	case RevokeClaim[C]:
		return p.RevokeClaim(caller, c.Claim)
	}

	return fmt.Errorf("poe: %w: %T", support.ErrUnknownCall, call)
}
