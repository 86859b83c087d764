package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/havoc/idl"
)

func newGrammarCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of the IDL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !check {
				_, err := out.Write(idl.GrammarSource())
				return err
			}

			grammar, err := idl.Grammar()
			if err != nil {
				printErrors(out, err)
				return err
			}
			fmt.Fprintf(out, "✅ Grammar is valid: %d productions reachable from %s\n", len(grammar), idl.GrammarStart)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "parse and verify the grammar instead of printing it")

	return cmd
}

// printErrors prints each entry of an error list on its own line.
func printErrors(out io.Writer, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(out, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(out, err)
	}
}
