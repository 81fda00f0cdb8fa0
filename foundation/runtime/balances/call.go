package balances

// Call represents the set of calls the balances pallet exposes. The set is
// closed: only types declared in this package implement it.
type Call interface {
	Name() string
	balancesCall()
}

// Transfer moves Amount from the caller to To.
type Transfer[A any, B any] struct {
	To     A `json:"to" validate:"required"`
	Amount B `json:"amount"`
}

// Name returns the name of the call.
func (Transfer[A, B]) Name() string {
	return "balances.transfer"
}

func (Transfer[A, B]) balancesCall() {}
