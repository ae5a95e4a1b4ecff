package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key [key]...",
	Short: "Parse localization keys into readable text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser, err := newParser()
		if err != nil {
			return err
		}

		results := make([]map[string]any, 0, len(args))
		for _, key := range args {
			results = append(results, parser.Parse(key).Render())
		}

		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}
