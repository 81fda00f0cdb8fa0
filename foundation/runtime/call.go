package runtime

import (
	"fmt"

	"github.com/ardanlabs/pallets/foundation/runtime/balances"
	"github.com/ardanlabs/pallets/foundation/runtime/poe"
	"github.com/ardanlabs/pallets/foundation/runtime/support"
)

// Call represents every call that can be made against the runtime. Each
// variant wraps the call set of one pallet. Adding a pallet means adding one
// variant here and one case in Dispatch.
type Call interface {
	Name() string
	runtimeCall()
}

// BalancesCall wraps a call owned by the balances pallet.
type BalancesCall struct {
	Call balances.Call
}

// Name returns the name of the wrapped call.
func (c BalancesCall) Name() string {
	if c.Call == nil {
		return "balances"
	}
	return c.Call.Name()
}

func (BalancesCall) runtimeCall() {}

// PoECall wraps a call owned by the proof of existence pallet.
type PoECall struct {
	Call poe.Call
}

// Name returns the name of the wrapped call.
func (c PoECall) Name() string {
	if c.Call == nil {
		return "poe"
	}
	return c.Call.Name()
}

func (PoECall) runtimeCall() {}

// =============================================================================

// Transfer constructs a call moving amount from the caller to the account.
func Transfer(to AccountID, amount Balance) Call {
	return BalancesCall{Call: balances.Transfer[AccountID, Balance]{To: to, Amount: amount}}
}

// CreateClaim constructs a call claiming the content for the caller.
func CreateClaim(claim Content) Call {
	return PoECall{Call: poe.CreateClaim[Content]{Claim: claim}}
}

// RevokeClaim constructs a call revoking the caller's claim on the content.
func RevokeClaim(claim Content) Call {
	return PoECall{Call: poe.RevokeClaim[Content]{Claim: claim}}
}

// =============================================================================

// dispatcher routes calls to the pallets owned by a runtime. It holds no
// state of its own.
type dispatcher struct {
	rt *Runtime
}

var _ support.Dispatch[AccountID, Call] = dispatcher{}

// Dispatch forwards the call to the pallet that owns it.
func (d dispatcher) Dispatch(caller AccountID, call Call) error {
	switch c := call.(type) {
	case BalancesCall:
		return d.rt.balances.Dispatch(caller, c.Call)
	case PoECall:
		return d.rt.poe.Dispatch(caller, c.Call)
	}

	return fmt.Errorf("runtime: %w: %T", support.ErrUnknownCall, call)
}

// callName returns the name of the call, tolerating a nil call.
func callName(call Call) string {
	if call == nil {
		return "<nil>"
	}
	return call.Name()
}
