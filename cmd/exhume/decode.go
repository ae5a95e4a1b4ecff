package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-gum/exhume/schema"
)

var decodeFile string

var decodeCmd = &cobra.Command{
	Use:   "decode [hex]",
	Short: "Decode one wire-format blob given as hex or read from a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var blob []byte
		switch {
		case decodeFile != "":
			var err error
			blob, err = os.ReadFile(decodeFile)
			if err != nil {
				return fmt.Errorf("read %q: %w", decodeFile, err)
			}
		case len(args) == 1:
			cleaned := strings.Map(func(r rune) rune {
				if r == ' ' || r == '\n' || r == '\t' {
					return -1
				}
				return r
			}, args[0])
			var err error
			blob, err = hex.DecodeString(cleaned)
			if err != nil {
				return fmt.Errorf("decode hex: %w", err)
			}
		default:
			return fmt.Errorf("give a hex string or --file")
		}

		data, err := json.MarshalIndent(schema.AnalyzeBlob(blob), "", "  ")
		if err != nil {
			return fmt.Errorf("encode analysis: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeFile, "file", "f", "", "Read the blob from this file instead of a hex argument")
}
