package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/warden"
	"github.com/aretw0/warden/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Warden gates an agent's workflow modes and tool permissions",
	Long: `Warden is a workflow state machine for autonomous coding agents.
A project declares named modes with constrained transitions between them,
plus optional per-mode instructions and tool permission rules. Warden
persists the current mode and an append-only transition history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the warden project")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// openWarden loads the project named by the --dir flag.
func openWarden(cmd *cobra.Command) (*warden.Warden, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	return warden.Open(dir, warden.WithLogger(logging.New(level)))
}
