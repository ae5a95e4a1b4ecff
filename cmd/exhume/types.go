package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-gum/exhume/schema"
)

var (
	typesKind  string
	typesLimit int
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Extract type schemas from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openCatalog()
		if err != nil {
			return err
		}
		defer db.Close()

		infos, err := db.Types(cmd.Context(), locale)
		if err != nil {
			return err
		}

		builder := &schema.Builder{Catalog: db, Locale: locale}

		byKind := map[string]int{}
		var schemas []schema.TypeSchema
		for _, info := range infos {
			if typesKind != "" && schema.KindName(info.Kind) != typesKind {
				continue
			}
			if typesLimit > 0 && len(schemas) >= typesLimit {
				break
			}

			ts, err := builder.BuildType(cmd.Context(), info)
			if err != nil {
				return err
			}
			byKind[ts.KindName]++
			schemas = append(schemas, ts)
		}

		data, err := json.MarshalIndent(map[string]any{
			"count":   len(schemas),
			"by_kind": byKind,
			"types":   schemas,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encode types: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	typesCmd.Flags().StringVar(&typesKind, "kind", "", "Only show one kind (primitive, entity, enum, object, array, special)")
	typesCmd.Flags().IntVar(&typesLimit, "limit", 0, "Process at most this many types (0 = all)")
}
