package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the state of a node.",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(fmt.Sprintf("%s/v1/state", url))
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		return relay(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
