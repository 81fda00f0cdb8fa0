// Package runtime composes the pallets into a single state transition
// function. It binds every pallet to one set of concrete types, routes calls
// to the pallet that owns them and executes blocks of extrinsics.
package runtime

import (
	"github.com/ardanlabs/pallets/foundation/runtime/balances"
	"github.com/ardanlabs/pallets/foundation/runtime/digest"
	"github.com/ardanlabs/pallets/foundation/runtime/genesis"
	"github.com/ardanlabs/pallets/foundation/runtime/numeric"
	"github.com/ardanlabs/pallets/foundation/runtime/poe"
	"github.com/ardanlabs/pallets/foundation/runtime/support"
	"github.com/ardanlabs/pallets/foundation/runtime/system"
)

// These are the concrete types the runtime configures every pallet with.
type (
	AccountID   = string
	BlockNumber = uint32
	Nonce       = uint32
	Balance     = numeric.U256
	Content     = string

	Header    = support.Header[BlockNumber]
	Extrinsic = support.Extrinsic[AccountID, Call]
	Block     = support.Block[Header, Extrinsic]
)

// =============================================================================

// EventHandler defines a function that is called when events occur in the
// processing of blocks.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to construct a runtime.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// Runtime owns one instance of every pallet. State only changes through
// ExecuteBlock and ApplyBlock, apart from the SetBalance override.
type Runtime struct {
	system    *system.Pallet[AccountID, BlockNumber, Nonce]
	balances  *balances.Pallet[AccountID, Balance]
	poe       *poe.Pallet[AccountID, Content]
	evHandler EventHandler
}

// New constructs a runtime with every pallet zero initialized and then
// applies the genesis balances.
func New(cfg Config) *Runtime {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	rt := Runtime{
		system:    system.New[AccountID, BlockNumber, Nonce](),
		balances:  balances.New[AccountID, Balance](),
		poe:       poe.New[AccountID, Content](),
		evHandler: ev,
	}

	for who, amount := range cfg.Genesis.Balances {
		rt.balances.SetBalance(who, amount)
	}

	return &rt
}

// SetBalance is an administrative override of an account balance. It exists
// for bootstrapping and bypasses block execution.
func (rt *Runtime) SetBalance(who AccountID, amount Balance) {
	rt.balances.SetBalance(who, amount)
}

// BlockNumber returns the number of the last executed block.
func (rt *Runtime) BlockNumber() BlockNumber {
	return rt.system.BlockNumber()
}

// Nonce returns the number of extrinsics the account has originated.
func (rt *Runtime) Nonce(who AccountID) Nonce {
	return rt.system.Nonce(who)
}

// Balance returns the balance of the account.
func (rt *Runtime) Balance(who AccountID) Balance {
	return rt.balances.Balance(who)
}

// Claim returns the owner of the content and whether it is claimed.
func (rt *Runtime) Claim(content Content) (AccountID, bool) {
	return rt.poe.GetClaim(content)
}

// =============================================================================

// State represents a copy of the storage of every pallet.
type State struct {
	BlockNumber BlockNumber           `json:"block_number"`
	Nonces      map[AccountID]Nonce   `json:"nonces"`
	Balances    map[AccountID]Balance `json:"balances"`
	Claims      map[Content]AccountID `json:"claims"`
}

// State makes a copy of the current storage of every pallet.
func (rt *Runtime) State() State {
	return State{
		BlockNumber: rt.system.BlockNumber(),
		Nonces:      rt.system.Nonces(),
		Balances:    rt.balances.Balances(),
		Claims:      rt.poe.Claims(),
	}
}

// StateRoot returns a hash representing the current storage of every pallet.
func (rt *Runtime) StateRoot() string {
	return digest.Hash(rt.State())
}
