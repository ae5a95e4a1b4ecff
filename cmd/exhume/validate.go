package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-gum/exhume/schema"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score extraction quality and report leftover localization keys",
	Long: `validate scores every action schema from 0 to 100 and aggregates the
results. With --input it reads a previous extract run from disk; without
it, it runs a fresh extraction against --db first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var actions []schema.ActionSchema

		if validateInput != "" {
			data, err := os.ReadFile(validateInput)
			if err != nil {
				return fmt.Errorf("read %q: %w", validateInput, err)
			}
			var run schema.Extraction
			if err := json.Unmarshal(data, &run); err != nil {
				return fmt.Errorf("parse %q: %w", validateInput, err)
			}
			actions = run.Actions
		} else {
			db, err := openCatalog()
			if err != nil {
				return err
			}
			defer db.Close()

			parser, err := newParser()
			if err != nil {
				return err
			}

			extractor := &schema.Extractor{
				Catalog: db,
				Parser:  parser,
				Log:     logger,
				Locale:  locale,
			}
			run, err := extractor.ExtractAll(cmd.Context())
			if err != nil {
				return err
			}
			actions = run.Actions
		}

		report := schema.ValidateAll(actions)
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Validate a previously written extract JSON file")
}
