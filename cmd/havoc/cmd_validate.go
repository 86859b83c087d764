package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/havoc/config"
	"github.com/dhamidi/havoc/idl"
)

func newValidateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "validate <config>",
		Aliases: []string{"val"},
		Short:   "Check a configuration file and the IDL files it references",
		Long: `Check a configuration file and the IDL files it references.

Every IDL file must parse and every endpoint must name an existing RPC
method and existing request and response messages. With --strict, duplicate
message names and duplicate field names or numbers are reported as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				if problems := config.ValidationErrors(err); len(problems) > 0 {
					return fmt.Errorf("%d problems: %w", len(problems), err)
				}
				return err
			}
			if err := config.Bind(cmd.Context(), cfg); err != nil {
				return err
			}

			if strict {
				if err := checkDocuments(cfg); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅ Configuration is valid.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "also reject duplicate messages and fields in IDL files")

	return cmd
}

// checkDocuments runs Document.CheckError once per distinct IDL file.
func checkDocuments(cfg *config.Config) error {
	checked := make(map[*idl.Document]bool)
	var errs []error
	for _, svc := range cfg.Spec.Services {
		if svc.Document == nil || checked[svc.Document] {
			continue
		}
		checked[svc.Document] = true
		if err := svc.Document.CheckError(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", svc.Proto, err))
		}
	}
	return errors.Join(errs...)
}
