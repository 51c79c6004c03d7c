package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forceCmd = &cobra.Command{
	Use:   "force <mode>",
	Short: "Move to any configured mode, bypassing declared edges",
	Long: `Force performs a manual override: the target only has to exist and
differ from the current mode. The history entry is tagged as forced so
the override stays visible in the audit trail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWarden(cmd)
		if err != nil {
			return err
		}

		state, err := w.Engine.Force(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Forced into mode %q\n", state.CurrentMode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forceCmd)
}
