package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/genesis"
	"github.com/ardanlabs/pallets/foundation/runtime/state"
	"github.com/ardanlabs/pallets/foundation/runtime/storage/memory"
	"github.com/spf13/cobra"
)

var (
	genesisPath string
	blocksPath  string
)

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Execute a file of blocks offline and print the receipts and final state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := genesis.Default()
		if genesisPath != "" {
			var err error
			if gen, err = genesis.Load(genesisPath); err != nil {
				return err
			}
		}

		blocks, err := loadBlocks(blocksPath)
		if err != nil {
			return err
		}

		return execBlocks(cmd.OutOrStdout(), gen, blocks)
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().StringVarP(&genesisPath, "genesis", "g", "", "Path to the genesis file, the sample genesis is used when empty.")
	execCmd.Flags().StringVarP(&blocksPath, "blocks", "b", "zblock/blocks.json", "Path to the file of blocks.")
}

func loadBlocks(path string) ([]runtime.BlockData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var blocks []runtime.BlockData
	if err := json.Unmarshal(content, &blocks); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return blocks, nil
}

// execBlocks runs the blocks in order and stops at the first rejected block.
func execBlocks(w io.Writer, gen genesis.Genesis, blocks []runtime.BlockData) error {
	st, err := state.New(state.Config{
		Genesis: gen,
		Storage: memory.New(),
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	for _, bd := range blocks {
		record, err := st.SubmitBlock(bd)
		if err != nil {
			return fmt.Errorf("block %d: %w", bd.Header.BlockNumber, err)
		}

		for _, r := range record.Receipts {
			status := "ok"
			if !r.Success {
				status = r.Error
			}
			fmt.Fprintf(w, "blk[%d]: ext[%d]: %s: %s: %s\n", record.Number, r.Index, r.Caller, r.Call, status)
		}
	}

	snap, root := st.RetrieveState()
	fmt.Fprintf(w, "state root: %s\n", root)

	return printJSON(w, snap)
}
