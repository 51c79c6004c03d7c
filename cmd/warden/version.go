package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/warden"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of warden",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("warden version %s\n", warden.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
