package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current mode, its transitions and recent history",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWarden(cmd)
		if err != nil {
			return err
		}

		status, err := w.Engine.Status(cmd.Context())
		if err != nil {
			// Read-only path: report the corruption instead of masking it.
			return fmt.Errorf("cannot read workflow state: %w", err)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(status)
		}

		fmt.Printf("Mode: %s\n", status.CurrentMode)
		if len(status.Transitions) == 0 {
			fmt.Println("Transitions: none (terminal mode)")
		} else {
			fmt.Println("Transitions:")
			for _, t := range status.Transitions {
				fmt.Printf("  -> %s: %s\n", t.To, t.Constraint)
			}
		}
		if status.HistoryTotal > 0 {
			fmt.Printf("History (%d total, last %d):\n", status.HistoryTotal, len(status.Recent))
			for _, h := range status.Recent {
				fmt.Printf("  %s  %s -> %s  %s\n",
					h.Timestamp.Format("2006-01-02 15:04:05"), h.From, h.To, h.Explanation)
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Emit machine-readable JSON")
	rootCmd.AddCommand(statusCmd)
}
