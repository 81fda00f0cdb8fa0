package runtime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/pallets/foundation/runtime/balances"
	"github.com/ardanlabs/pallets/foundation/runtime/poe"
	"github.com/go-playground/validator/v10"
)

// argsValidator checks the tags declared on the call argument types.
var argsValidator = validator.New()

// HeaderData represents the header of a block as it is exchanged with the
// outside world.
type HeaderData struct {
	BlockNumber BlockNumber `json:"block_number"`
}

// CallData represents a call as a pallet name, a call name and the JSON
// encoded arguments of the call.
type CallData struct {
	Pallet string          `json:"pallet" validate:"required"`
	Call   string          `json:"call" validate:"required"`
	Args   json.RawMessage `json:"args"`
}

// ExtrinsicData represents an extrinsic as it is exchanged with the outside
// world.
type ExtrinsicData struct {
	Caller AccountID `json:"caller" validate:"required"`
	Call   CallData  `json:"call"`
}

// BlockData represents a block as it is exchanged with the outside world.
type BlockData struct {
	Header     HeaderData      `json:"header"`
	Extrinsics []ExtrinsicData `json:"extrinsics" validate:"dive"`
}

// ReceiptData represents a receipt as it is exchanged with the outside world.
type ReceiptData struct {
	Index   int       `json:"index"`
	Caller  AccountID `json:"caller"`
	Call    string    `json:"call"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// =============================================================================

// NewBlockData constructs the exchange representation of a block.
func NewBlockData(block Block) (BlockData, error) {
	exts := make([]ExtrinsicData, len(block.Extrinsics))
	for i, ext := range block.Extrinsics {
		cd, err := NewCallData(ext.Call)
		if err != nil {
			return BlockData{}, fmt.Errorf("extrinsic[%d]: %w", i, err)
		}

		exts[i] = ExtrinsicData{
			Caller: ext.Caller,
			Call:   cd,
		}
	}

	bd := BlockData{
		Header:     HeaderData{BlockNumber: block.Header.BlockNumber},
		Extrinsics: exts,
	}

	return bd, nil
}

// ToBlock converts the exchange representation back into a block. Calls that
// do not exist or carry malformed arguments fail the conversion.
func ToBlock(bd BlockData) (Block, error) {
	exts := make([]Extrinsic, len(bd.Extrinsics))
	for i, ed := range bd.Extrinsics {
		if ed.Caller == "" {
			return Block{}, fmt.Errorf("extrinsic[%d]: missing caller", i)
		}

		call, err := ToCall(ed.Call)
		if err != nil {
			return Block{}, fmt.Errorf("extrinsic[%d]: %w", i, err)
		}

		exts[i] = Extrinsic{
			Caller: ed.Caller,
			Call:   call,
		}
	}

	block := Block{
		Header:     Header{BlockNumber: bd.Header.BlockNumber},
		Extrinsics: exts,
	}

	return block, nil
}

// NewCallData constructs the exchange representation of a call.
func NewCallData(call Call) (CallData, error) {
	var args any
	switch c := call.(type) {
	case BalancesCall:
		args = c.Call
	case PoECall:
		args = c.Call
	default:
		return CallData{}, fmt.Errorf("unknown call %T", call)
	}

	if args == nil {
		return CallData{}, errors.New("empty call")
	}

	data, err := json.Marshal(args)
	if err != nil {
		return CallData{}, err
	}

	pallet, name, _ := strings.Cut(call.Name(), ".")

	cd := CallData{
		Pallet: pallet,
		Call:   name,
		Args:   data,
	}

	return cd, nil
}

// ToCall converts the exchange representation back into a call.
func ToCall(cd CallData) (Call, error) {
	switch cd.Pallet + "." + cd.Call {
	case "balances.transfer":
		var args balances.Transfer[AccountID, Balance]
		if err := decodeArgs(cd.Args, &args); err != nil {
			return nil, err
		}
		return BalancesCall{Call: args}, nil

	case "poe.create_claim":
		var args poe.CreateClaim[Content]
		if err := decodeArgs(cd.Args, &args); err != nil {
			return nil, err
		}
		return PoECall{Call: args}, nil

	case "poe.revoke_claim":
		var args poe.RevokeClaim[Content]
		if err := decodeArgs(cd.Args, &args); err != nil {
			return nil, err
		}
		return PoECall{Call: args}, nil
	}

	return nil, fmt.Errorf("unknown call %s.%s", cd.Pallet, cd.Call)
}

// NewReceiptData constructs the exchange representation of a receipt.
func NewReceiptData(r Receipt) ReceiptData {
	rd := ReceiptData{
		Index:   r.Index,
		Caller:  r.Caller,
		Call:    r.Call,
		Success: r.Success(),
	}

	if r.Err != nil {
		rd.Error = r.Err.Error()
	}

	return rd
}

// NewReceiptsData constructs the exchange representation of a set of receipts.
func NewReceiptsData(receipts []Receipt) []ReceiptData {
	rds := make([]ReceiptData, len(receipts))
	for i, r := range receipts {
		rds[i] = NewReceiptData(r)
	}
	return rds
}

// =============================================================================

// decodeArgs decodes the call arguments, rejecting fields the call does not
// have and arguments that fail the validation tags of the call.
func decodeArgs(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errors.New("missing call arguments")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding call arguments: %w", err)
	}

	if err := argsValidator.Struct(v); err != nil {
		return fmt.Errorf("validating call arguments: %w", err)
	}

	return nil
}
