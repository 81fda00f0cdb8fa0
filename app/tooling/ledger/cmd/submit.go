package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/spf13/cobra"
)

var blockPath string

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a block file to a node.",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(blockPath)
		if err != nil {
			return err
		}

		var bd runtime.BlockData
		if err := json.Unmarshal(content, &bd); err != nil {
			return fmt.Errorf("decoding %s: %w", blockPath, err)
		}

		return submit(cmd.OutOrStdout(), bd)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&blockPath, "file", "f", "", "Path to the block file.")
	submitCmd.MarkFlagRequired("file")
}

func submit(w io.Writer, bd runtime.BlockData) error {
	data, err := json.Marshal(bd)
	if err != nil {
		return err
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/blocks", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return relay(w, resp)
}

// relay copies the node response to the writer and turns an error status
// into an error.
func relay(w io.Writer, resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("node responded %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	_, err = fmt.Fprintln(w, string(bytes.TrimSpace(body)))
	return err
}
