package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// writeResult writes v as indented JSON when requested and as text otherwise.
func writeResult(cmd *cobra.Command, v any, text func() string) error {
	format, _ := cmd.Flags().GetString(flagOutput)

	switch format {
	case outputJSON:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode the result: %w", err)
		}

		cmd.Println(string(raw))
	case outputText:
		cmd.Println(text())
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	return nil
}
