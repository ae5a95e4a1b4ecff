package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-gum/exhume/schema"
)

var (
	hiddenLevel string
	hiddenLimit int
)

var hiddenCmd = &cobra.Command{
	Use:   "hidden",
	Short: "List actions the catalog hides from normal browsing",
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
			Catalog: db,
			Parser:  parser,
			Log:     logger,
			Locale:  locale,
			Limit:   hiddenLimit,
		}

		actions, err := extractor.ExtractHidden(cmd.Context())
		if err != nil {
			return err
		}

		if hiddenLevel != "" {
			filtered := actions[:0]
			for _, action := range actions {
				if action.Visibility.Level == hiddenLevel {
					filtered = append(filtered, action)
				}
			}
			actions = filtered
		}

		data, err := json.MarshalIndent(map[string]any{
			"count":   len(actions),
			"actions": actions,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encode hidden actions: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	hiddenCmd.Flags().StringVar(&hiddenLevel, "level", "", "Only show one visibility level (hidden, restricted, very_hidden, ...)")
	hiddenCmd.Flags().IntVar(&hiddenLimit, "limit", 0, "Process at most this many actions (0 = all)")
}
