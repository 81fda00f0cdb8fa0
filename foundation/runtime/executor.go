package runtime

import (
	"errors"
	"fmt"
)

// ErrInvalidBlockNumber is matched by every BlockError.
var ErrInvalidBlockNumber = errors.New("invalid block number")

// BlockError is returned when a block does not carry the next block number.
// Nothing in the runtime is changed when a block is rejected.
type BlockError struct {
	Expected BlockNumber
	Got      BlockNumber
}

// Error implements the error interface.
func (be *BlockError) Error() string {
	return fmt.Sprintf("invalid block number, expected %d, got %d", be.Expected, be.Got)
}

// Unwrap allows errors.Is to match ErrInvalidBlockNumber.
func (be *BlockError) Unwrap() error {
	return ErrInvalidBlockNumber
}

// =============================================================================

// Receipt represents the outcome of a single extrinsic inside an executed
// block.
type Receipt struct {
	Index  int
	Caller AccountID
	Call   string
	Err    error
}

// Success reports whether the call was applied.
func (r Receipt) Success() bool {
	return r.Err == nil
}

// =============================================================================

// ExecuteBlock applies the block and discards the receipts. Only a block
// number mismatch fails the block; failed extrinsics are reported through the
// event handler.
func (rt *Runtime) ExecuteBlock(block Block) error {
	_, err := rt.ApplyBlock(block)
	return err
}

// ApplyBlock validates the header, advances the block number and applies
// every extrinsic in order. The caller's nonce is incremented before its call
// is dispatched, whether or not the call succeeds. A failing extrinsic does
// not stop the ones after it. One receipt is returned per extrinsic.
func (rt *Runtime) ApplyBlock(block Block) ([]Receipt, error) {
	expected := rt.system.NextBlockNumber()
	if block.Header.BlockNumber != expected {
		err := BlockError{Expected: expected, Got: block.Header.BlockNumber}
		rt.evHandler("runtime: ApplyBlock: REJECTED: %s", err.Error())
		return nil, &err
	}

	rt.system.IncBlockNumber()
	rt.evHandler("runtime: ApplyBlock: started: blk[%d]: numExt[%d]", expected, len(block.Extrinsics))

	d := dispatcher{rt: rt}
	receipts := make([]Receipt, 0, len(block.Extrinsics))

	for i, ext := range block.Extrinsics {
		rt.system.IncNonce(ext.Caller)

		r := Receipt{
			Index:  i,
			Caller: ext.Caller,
			Call:   callName(ext.Call),
			Err:    d.Dispatch(ext.Caller, ext.Call),
		}
		receipts = append(receipts, r)

		if !r.Success() {
			rt.evHandler("runtime: ApplyBlock: blk[%d]: ext[%d]: caller[%s]: call[%s]: FAILED: %s", expected, i, r.Caller, r.Call, r.Err)
		}
	}

	rt.evHandler("runtime: ApplyBlock: completed: blk[%d]", expected)

	return receipts, nil
}
