package runtime_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/balances"
	"github.com/ardanlabs/pallets/foundation/runtime/genesis"
	"github.com/ardanlabs/pallets/foundation/runtime/numeric"
	"github.com/ardanlabs/pallets/foundation/runtime/poe"
	"github.com/ardanlabs/pallets/foundation/runtime/support"
	"github.com/google/go-cmp/cmp"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func u(v uint64) numeric.U256 {
	return numeric.NewU256(v)
}

func newRuntime(balances map[string]numeric.U256, ev runtime.EventHandler) *runtime.Runtime {
	return runtime.New(runtime.Config{
		Genesis:   genesis.Genesis{ChainID: "test", Balances: balances},
		EvHandler: ev,
	})
}

func block(number runtime.BlockNumber, exts ...runtime.Extrinsic) runtime.Block {
	return runtime.Block{
		Header:     runtime.Header{BlockNumber: number},
		Extrinsics: exts,
	}
}

func ext(caller runtime.AccountID, call runtime.Call) runtime.Extrinsic {
	return runtime.Extrinsic{Caller: caller, Call: call}
}

// =============================================================================

func TestNew(t *testing.T) {
	t.Log("Given the need to construct a runtime.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen handling an empty configuration.", testID)
		{
			rt := runtime.New(runtime.Config{})

			exp := runtime.State{
				Nonces:   map[string]uint32{},
				Balances: map[string]numeric.U256{},
				Claims:   map[string]string{},
			}
			if diff := cmp.Diff(exp, rt.State()); diff != "" {
				t.Fatalf("\t%s\tTest %d:\tShould start with every pallet empty:\n%s", failed, testID, diff)
			}
			t.Logf("\t%s\tTest %d:\tShould start with every pallet empty.", success, testID)
		}
	}
}

func TestBlockNumberMismatch(t *testing.T) {
	t.Log("Given the need to reject blocks out of sequence.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen executing block 5 at block 0.", testID)
		{
			var events []string
			ev := func(v string, args ...any) {
				events = append(events, fmt.Sprintf(v, args...))
			}

			rt := newRuntime(map[string]numeric.U256{"alice": u(100)}, ev)
			before := rt.State()

			err := rt.ExecuteBlock(block(5, ext("alice", runtime.Transfer("bob", u(10)))))
			if !errors.Is(err, runtime.ErrInvalidBlockNumber) {
				t.Fatalf("\t%s\tTest %d:\tShould get a block error: got %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get a block error.", success, testID)

			var be *runtime.BlockError
			if !errors.As(err, &be) || be.Expected != 1 || be.Got != 5 {
				t.Fatalf("\t%s\tTest %d:\tShould report expected and provided numbers: got %+v", failed, testID, be)
			}
			t.Logf("\t%s\tTest %d:\tShould report expected and provided numbers.", success, testID)

			if diff := cmp.Diff(before, rt.State()); diff != "" {
				t.Fatalf("\t%s\tTest %d:\tShould not change any state:\n%s", failed, testID, diff)
			}
			t.Logf("\t%s\tTest %d:\tShould not change any state.", success, testID)

			if len(events) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould report the rejection: got %v", failed, testID, events)
			}
			t.Logf("\t%s\tTest %d:\tShould report the rejection.", success, testID)
		}
	}
}

func TestExtrinsicIsolation(t *testing.T) {
	t.Log("Given the need to isolate failing extrinsics.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a block holds a valid and an invalid transfer.", testID)
		{
			var failures int
			ev := func(v string, args ...any) {
				for _, arg := range args {
					if _, ok := arg.(error); ok {
						failures++
					}
				}
			}

			rt := newRuntime(map[string]numeric.U256{"alice": u(100), "dave": u(5)}, ev)

			receipts, err := rt.ApplyBlock(block(1,
				ext("alice", runtime.Transfer("bob", u(30))),
				ext("dave", runtime.Transfer("bob", u(30))),
			))
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to execute the block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to execute the block.", success, testID)

			if len(receipts) != 2 || !receipts[0].Success() || !errors.Is(receipts[1].Err, balances.ErrNotEnoughFunds) {
				t.Fatalf("\t%s\tTest %d:\tShould get a receipt per extrinsic: got %+v", failed, testID, receipts)
			}
			t.Logf("\t%s\tTest %d:\tShould get a receipt per extrinsic.", success, testID)

			if failures != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould report the failure through the event handler: got %d", failed, testID, failures)
			}
			t.Logf("\t%s\tTest %d:\tShould report the failure through the event handler.", success, testID)

			exp := runtime.State{
				BlockNumber: 1,
				Nonces:      map[string]uint32{"alice": 1, "dave": 1},
				Balances:    map[string]numeric.U256{"alice": u(70), "bob": u(30), "dave": u(5)},
				Claims:      map[string]string{},
			}
			if diff := cmp.Diff(exp, rt.State()); diff != "" {
				t.Fatalf("\t%s\tTest %d:\tShould apply only the valid transfer:\n%s", failed, testID, diff)
			}
			t.Logf("\t%s\tTest %d:\tShould apply only the valid transfer.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen every extrinsic in a block fails.", testID)
		{
			rt := newRuntime(nil, nil)

			err := rt.ExecuteBlock(block(1,
				ext("alice", runtime.Transfer("bob", u(1))),
				ext("alice", runtime.RevokeClaim("doc")),
				ext("alice", nil),
			))
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould still execute the block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould still execute the block.", success, testID)

			if rt.BlockNumber() != 1 || rt.Nonce("alice") != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould advance block and nonce: got %d %d", failed, testID, rt.BlockNumber(), rt.Nonce("alice"))
			}
			t.Logf("\t%s\tTest %d:\tShould advance block and nonce.", success, testID)
		}
	}
}

func TestEndToEnd(t *testing.T) {
	t.Log("Given the need to execute a chain of blocks.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen executing the demonstration blocks.", testID)
		{
			rt := newRuntime(map[string]numeric.U256{"alice": u(100)}, nil)

			blocks := []runtime.Block{
				block(1,
					ext("alice", runtime.Transfer("bob", u(30))),
					ext("alice", runtime.Transfer("charlie", u(20))),
				),
				block(2,
					ext("alice", runtime.CreateClaim("my_document")),
					ext("bob", runtime.CreateClaim("bobs document")),
					ext("charlie", runtime.CreateClaim("my_document")),
				),
			}

			for _, blk := range blocks {
				if err := rt.ExecuteBlock(blk); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to execute block %d: %v", failed, testID, blk.Header.BlockNumber, err)
				}
				t.Logf("\t%s\tTest %d:\tShould be able to execute block %d.", success, testID, blk.Header.BlockNumber)
			}

			exp := runtime.State{
				BlockNumber: 2,
				Nonces:      map[string]uint32{"alice": 3, "bob": 1, "charlie": 1},
				Balances:    map[string]numeric.U256{"alice": u(50), "bob": u(30), "charlie": u(20)},
				Claims:      map[string]string{"my_document": "alice", "bobs document": "bob"},
			}
			if diff := cmp.Diff(exp, rt.State()); diff != "" {
				t.Fatalf("\t%s\tTest %d:\tShould get the expected final state:\n%s", failed, testID, diff)
			}
			t.Logf("\t%s\tTest %d:\tShould get the expected final state.", success, testID)

			owner, exists := rt.Claim("my_document")
			if !exists || owner != "alice" {
				t.Fatalf("\t%s\tTest %d:\tShould keep the first claim: got %q", failed, testID, owner)
			}
			t.Logf("\t%s\tTest %d:\tShould keep the first claim.", success, testID)
		}
	}
}

func TestDeterminism(t *testing.T) {
	t.Log("Given the need for block execution to be deterministic.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen executing the same block on two runtimes.", testID)
		{
			blk := block(1,
				ext("alice", runtime.Transfer("bob", u(60))),
				ext("alice", runtime.Transfer("charlie", u(60))),
				ext("bob", runtime.CreateClaim("doc")),
			)

			rt1 := newRuntime(map[string]numeric.U256{"alice": u(100)}, nil)
			rt2 := newRuntime(map[string]numeric.U256{"alice": u(100)}, nil)

			r1, err1 := rt1.ApplyBlock(blk)
			r2, err2 := rt2.ApplyBlock(blk)
			if err1 != nil || err2 != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to execute the block: %v %v", failed, testID, err1, err2)
			}

			if rt1.StateRoot() != rt2.StateRoot() {
				t.Fatalf("\t%s\tTest %d:\tShould get the same state root.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get the same state root.", success, testID)

			if diff := cmp.Diff(runtime.NewReceiptsData(r1), runtime.NewReceiptsData(r2)); diff != "" {
				t.Fatalf("\t%s\tTest %d:\tShould get the same receipts:\n%s", failed, testID, diff)
			}
			t.Logf("\t%s\tTest %d:\tShould get the same receipts.", success, testID)

			if r1[1].Success() {
				t.Fatalf("\t%s\tTest %d:\tShould fail the second transfer for lack of funds.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould fail the second transfer for lack of funds.", success, testID)
		}
	}
}

// foreignCall satisfies runtime.Call by embedding without being a variant the
// runtime knows about.
type foreignCall struct {
	runtime.Call
}

func (foreignCall) Name() string { return "foreign.call" }

func TestUnknownCall(t *testing.T) {
	t.Log("Given the need to reject calls no pallet owns.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a block holds unknown calls.", testID)
		{
			rt := newRuntime(nil, nil)

			receipts, err := rt.ApplyBlock(block(1,
				ext("alice", foreignCall{}),
				ext("alice", runtime.BalancesCall{}),
				ext("alice", runtime.PoECall{Call: poe.CreateClaim[int]{Claim: 7}}),
			))
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould still execute the block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould still execute the block.", success, testID)

			for _, r := range receipts {
				if !errors.Is(r.Err, support.ErrUnknownCall) {
					t.Fatalf("\t%s\tTest %d:\tShould reject %s: got %v", failed, testID, r.Call, r.Err)
				}
				t.Logf("\t%s\tTest %d:\tShould reject %s.", success, testID, r.Call)
			}
		}
	}
}
