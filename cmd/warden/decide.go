package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var decideCmd = &cobra.Command{
	Use:   "decide <tool>",
	Short: "Check a tool call against the current mode's permission rules",
	Long: `Decide prints allow, deny or pass for a tool invocation. The argument
payload is given either as a raw JSON object via --args, or through one
of the shorthand flags (--path, --command, --url).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWarden(cmd)
		if err != nil {
			return err
		}

		payload, err := decidePayload(cmd)
		if err != nil {
			return err
		}

		decision, err := w.Decide(cmd.Context(), args[0], payload)
		if err != nil {
			return err
		}

		fmt.Println(decision)
		return nil
	},
}

func decidePayload(cmd *cobra.Command) (map[string]any, error) {
	if raw, _ := cmd.Flags().GetString("args"); raw != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("parse --args: %w", err)
		}
		return payload, nil
	}

	payload := map[string]any{}
	if path, _ := cmd.Flags().GetString("path"); path != "" {
		payload["file_path"] = path
	}
	if command, _ := cmd.Flags().GetString("command"); command != "" {
		payload["command"] = command
	}
	if url, _ := cmd.Flags().GetString("url"); url != "" {
		payload["url"] = url
	}
	return payload, nil
}

func init() {
	decideCmd.Flags().String("args", "", "Tool arguments as a JSON object")
	decideCmd.Flags().String("path", "", "Shorthand for a file_path argument")
	decideCmd.Flags().String("command", "", "Shorthand for a command argument")
	decideCmd.Flags().String("url", "", "Shorthand for a url argument")
	rootCmd.AddCommand(decideCmd)
}
