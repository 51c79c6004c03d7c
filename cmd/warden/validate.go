package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/warden/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the workflow definition for consistency",
	Long:  `Loads workflow.yaml, verifies the mode graph (every transition target must resolve to a defined mode) and reports which overlays were found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			return err
		}

		project, err := config.Load(dir)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Printf("Workflow %q is valid: %d modes, initial %q\n",
			project.Workflow.Name, len(project.Workflow.Modes), project.Workflow.Default)
		for id := range project.Workflow.Modes {
			overlay := project.Overlay(id)
			fmt.Printf("  %-16s instructions=%-5t permissions=%t\n",
				id, overlay.Instructions != nil, overlay.Permissions != nil)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
