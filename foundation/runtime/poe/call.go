package poe

// Call represents the set of calls the proof of existence pallet exposes.
type Call interface {
	Name() string
	poeCall()
}

// CreateClaim claims ownership of content for the caller.
type CreateClaim[C any] struct {
	Claim C `json:"claim" validate:"required"`
}

// Name returns the name of the call.
func (CreateClaim[C]) Name() string {
	return "poe.create_claim"
}

func (CreateClaim[C]) poeCall() {}

// RevokeClaim gives up the caller's ownership of content.
type RevokeClaim[C any] struct {
	Claim C `json:"claim" validate:"required"`
}

// Name returns the name of the call.
func (RevokeClaim[C]) Name() string {
	return "poe.revoke_claim"
}

func (RevokeClaim[C]) poeCall() {}
