package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset state to the initial mode with empty history",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWarden(cmd)
		if err != nil {
			return err
		}

		state, err := w.Engine.Reset(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("State reset: mode %q, history cleared\n", state.CurrentMode)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
