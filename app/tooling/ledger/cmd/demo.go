package cmd

import (
	"fmt"
	"io"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/genesis"
	"github.com/ardanlabs/pallets/foundation/runtime/numeric"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Execute two sample blocks and print the final state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return demo(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// demoBlocks returns the sample chain: alice pays bob and charlie, then
// alice and bob each claim a document.
func demoBlocks() []runtime.Block {
	return []runtime.Block{
		{
			Header: runtime.Header{BlockNumber: 1},
			Extrinsics: []runtime.Extrinsic{
				{Caller: "alice", Call: runtime.Transfer("bob", numeric.NewU256(30))},
				{Caller: "alice", Call: runtime.Transfer("charlie", numeric.NewU256(20))},
			},
		},
		{
			Header: runtime.Header{BlockNumber: 2},
			Extrinsics: []runtime.Extrinsic{
				{Caller: "alice", Call: runtime.CreateClaim("my_document")},
				{Caller: "bob", Call: runtime.CreateClaim("bobs document")},
			},
		},
	}
}

func demo(w io.Writer) error {
	ev := func(v string, args ...any) {
		fmt.Fprintf(w, v+"\n", args...)
	}

	rt := runtime.New(runtime.Config{
		Genesis:   genesis.Default(),
		EvHandler: ev,
	})

	for _, block := range demoBlocks() {
		if err := rt.ExecuteBlock(block); err != nil {
			return fmt.Errorf("invalid block: %w", err)
		}
	}

	return printJSON(w, rt.State())
}
