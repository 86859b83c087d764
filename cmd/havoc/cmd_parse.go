package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/havoc/idl/parser"
)

func newParseCmd() *cobra.Command {
	var tokens bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an IDL file and dump the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read idl file: %w", err)
			}

			var v any
			if tokens {
				v, err = parser.Tokenize(data, parser.WithFile(filename))
			} else {
				v, err = parser.Parse(data, parser.WithFile(filename))
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(v); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tokens, "tokens", false, "dump the token stream instead of the document")

	return cmd
}
