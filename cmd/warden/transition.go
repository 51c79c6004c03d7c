package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var transitionCmd = &cobra.Command{
	Use:   "transition <mode>",
	Short: "Move to a mode through a declared edge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWarden(cmd)
		if err != nil {
			return err
		}

		explanation, err := cmd.Flags().GetString("why")
		if err != nil {
			return err
		}

		state, err := w.Engine.Transition(cmd.Context(), args[0], explanation)
		if err != nil {
			return err
		}

		fmt.Printf("Now in mode %q (%d transitions recorded)\n", state.CurrentMode, len(state.History))
		return nil
	},
}

func init() {
	transitionCmd.Flags().StringP("why", "w", "", "Explanation recorded in the history (required)")
	rootCmd.AddCommand(transitionCmd)
}
