// Command exhume extracts structured action and type schemas from a tool
// catalog database, recovering readable text from unresolved localization
// keys and decoding the opaque wire-format blobs along the way.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-gum/exhume/catalog"
	"github.com/go-gum/exhume/lockey"
)

var (
	dbPath    string
	locale    string
	rulesPath string
	verbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "exhume",
	Short: "Dig structured schemas out of a tool catalog database",
	Long: `exhume reads a tool catalog sqlite database and produces structured
JSON schemas for its actions and types. Along the way it decodes the
catalog's opaque binary blobs best-effort and replaces unresolved
localization keys with readable text synthesized from the keys themselves.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openCatalog opens the database named by --db. Commands that need the
// catalog call this in their RunE so pure-text commands work without one.
func openCatalog() (*catalog.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("no catalog database given, use --db")
	}
	return catalog.Open(dbPath)
}

// newParser builds the key parser, with custom rules when --rules is set.
func newParser() (*lockey.Parser, error) {
	if rulesPath == "" {
		return lockey.NewParser(), nil
	}
	rules, err := lockey.LoadRules(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules %q: %w", rulesPath, err)
	}
	return lockey.NewParserWith(rules), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the catalog sqlite database")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "en", "Localization locale to read")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "TOML file overriding the key parsing rules")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(hiddenCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
