package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/genesis"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Demo(t *testing.T) {
	t.Log("Given the need to run the sample chain.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen running the demo.", testID)
		{
			var buf bytes.Buffer
			if err := demo(&buf); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to run the demo: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to run the demo.", success, testID)

			out := buf.String()
			for _, want := range []string{
				`"block_number": 2`,
				`"alice": "50"`,
				`"bob": "30"`,
				`"charlie": "20"`,
				`"my_document": "alice"`,
				`"bobs document": "bob"`,
			} {
				if !strings.Contains(out, want) {
					t.Fatalf("\t%s\tTest %d:\tShould print %s in the final state:\n%s", failed, testID, want, out)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould print the final state.", success, testID)
		}
	}
}

func Test_ExecBlocks(t *testing.T) {
	t.Log("Given the need to execute a file of blocks offline.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a later block is out of order.", testID)
		{
			var blocks []runtime.BlockData
			data := `[
				{"header": {"block_number": 1}, "extrinsics": [
					{"caller": "alice", "call": {"pallet": "balances", "call": "transfer", "args": {"to": "bob", "amount": "500"}}}
				]},
				{"header": {"block_number": 3}, "extrinsics": []}
			]`
			if err := json.Unmarshal([]byte(data), &blocks); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the blocks: %v", failed, testID, err)
			}

			var buf bytes.Buffer
			err := execBlocks(&buf, genesis.Default(), blocks)
			if err == nil || !strings.Contains(err.Error(), "expected 2, got 3") {
				t.Fatalf("\t%s\tTest %d:\tShould stop at the rejected block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould stop at the rejected block.", success, testID)

			if !strings.Contains(buf.String(), "blk[1]: ext[0]: alice: balances.transfer: Not enough funds") {
				t.Fatalf("\t%s\tTest %d:\tShould print the failed receipt:\n%s", failed, testID, buf.String())
			}
			t.Logf("\t%s\tTest %d:\tShould print the failed receipt.", success, testID)
		}
	}
}

func Test_Relay(t *testing.T) {
	t.Log("Given the need to talk to a node.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the node rejects a block.", testID)
		{
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"invalid block number, expected 1, got 2"}`))
			}))
			defer srv.Close()

			url = srv.URL

			var buf bytes.Buffer
			err := submit(&buf, runtime.BlockData{Header: runtime.HeaderData{BlockNumber: 2}})
			if err == nil || !strings.Contains(err.Error(), "node responded 400") {
				t.Fatalf("\t%s\tTest %d:\tShould return the node error: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould return the node error.", success, testID)
		}
	}
}
