package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-gum/exhume/schema"
)

var (
	extractOut     string
	extractCSV     string
	extractLimit   int
	extractNoBlobs bool
	extractWorkers int
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract every action schema from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
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
			Catalog:      db,
			Parser:       parser,
			Log:          logger,
			Locale:       locale,
			IncludeBlobs: !extractNoBlobs,
			Limit:        extractLimit,
			Concurrency:  extractWorkers,
		}

		out, err := extractor.ExtractAll(cmd.Context())
		if err != nil {
			return err
		}

		if extractCSV != "" {
			if err := writeActionsCSV(extractCSV, out.Actions); err != nil {
				return err
			}
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode extraction: %w", err)
		}

		if extractOut == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(extractOut, data, 0o644); err != nil {
			return fmt.Errorf("write %q: %w", extractOut, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %d actions to %s\n", len(out.Actions), extractOut)
		return nil
	},
}

// writeActionsCSV writes a flat one-row-per-action summary next to the full
// JSON output, for spreadsheet triage.
func writeActionsCSV(path string, actions []schema.ActionSchema) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"id", "name", "synthetic_name", "app", "type", "visibility", "hidden", "parameters", "deprecated"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, action := range actions {
		record := []string{
			action.ID,
			action.Name.Text,
			strconv.FormatBool(action.Name.Synthetic),
			action.App.Name,
			action.Type,
			action.Visibility.Level,
			strconv.FormatBool(action.Hidden),
			strconv.Itoa(len(action.Parameters)),
			strconv.FormatBool(action.Deprecation != nil),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	return nil
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write JSON output to this file instead of stdout")
	extractCmd.Flags().StringVar(&extractCSV, "csv", "", "Also write a one-row-per-action CSV summary")
	extractCmd.Flags().IntVar(&extractLimit, "limit", 0, "Process at most this many actions (0 = all)")
	extractCmd.Flags().BoolVar(&extractNoBlobs, "no-blobs", false, "Skip decoding parameter type-instance blobs")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "Concurrent schema builders (0 = default)")
}
