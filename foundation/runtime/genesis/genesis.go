// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/pallets/foundation/runtime/numeric"
	"github.com/go-playground/validator/v10"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date     time.Time               `json:"date"`
	ChainID  string                  `json:"chain_id" validate:"required"` // The chain id represents an unique id for this running instance.
	Balances map[string]numeric.U256 `json:"balances" validate:"dive,keys,required,endkeys"`
}

// Default returns the genesis used by the demonstration blocks.
func Default() Genesis {
	return Genesis{
		Date:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainID: "pallets-dev",
		Balances: map[string]numeric.U256{
			"alice": numeric.NewU256(100),
		},
	}
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis: %w", err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the genesis information is usable.
func (g Genesis) Validate() error {
	if err := validator.New().Struct(g); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	return nil
}
