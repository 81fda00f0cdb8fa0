// Package numeric provides the fixed width numeric types the runtime is
// configured with.
package numeric

import (
	"bytes"
	"fmt"

	"github.com/holiman/uint256"
)

// U256 is an unsigned 256 bit integer that satisfies the support.Amount
// constraint. The zero value represents zero.
type U256 uint256.Int

// NewU256 constructs a U256 from the specified value.
func NewU256(v uint64) U256 {
	return U256(*uint256.NewInt(v))
}

// MaxU256 returns the largest value a U256 can hold.
func MaxU256() U256 {
	var z uint256.Int
	z.SetAllOne()
	return U256(z)
}

// ParseU256 converts a base 10 string to a U256.
func ParseU256(s string) (U256, error) {
	var z uint256.Int
	if err := z.SetFromDecimal(s); err != nil {
		return U256{}, fmt.Errorf("parsing %q: %w", s, err)
	}

	return U256(z), nil
}

// CheckedAdd returns u+v and false if the result does not fit.
func (u U256) CheckedAdd(v U256) (U256, bool) {
	var z uint256.Int
	if _, overflow := z.AddOverflow(u.int(), v.int()); overflow {
		return U256{}, false
	}

	return U256(z), true
}

// CheckedSub returns u-v and false if v is larger than u.
func (u U256) CheckedSub(v U256) (U256, bool) {
	var z uint256.Int
	if _, underflow := z.SubOverflow(u.int(), v.int()); underflow {
		return U256{}, false
	}

	return U256(z), true
}

// Cmp compares u and v and returns -1, 0 or +1.
func (u U256) Cmp(v U256) int {
	return u.int().Cmp(v.int())
}

// IsZero reports whether u is zero.
func (u U256) IsZero() bool {
	return u.int().IsZero()
}

// String returns the base 10 representation.
func (u U256) String() string {
	return u.int().Dec()
}

// MarshalJSON encodes the value as a quoted base 10 string so values larger
// than 2^53 survive JavaScript clients.
func (u U256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON accepts both a quoted base 10 string and a bare JSON number.
func (u *U256) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)

	v, err := ParseU256(string(data))
	if err != nil {
		return err
	}

	*u = v
	return nil
}

func (u *U256) int() *uint256.Int {
	return (*uint256.Int)(u)
}
