package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/havoc/framework"
)

func newListFrameworksCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "list-frameworks",
		Aliases: []string{"list-fw"},
		Short:   "List the frameworks projects can be generated for",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available frameworks:")
			for _, fw := range framework.All() {
				if verbose {
					fmt.Fprintf(out, "• %-8s %s\n", fw, fw.Description())
				} else {
					fmt.Fprintf(out, "• %s\n", fw)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "long", "l", false, "include a description of each framework")

	return cmd
}

func frameworkNames() string {
	names := make([]string, 0, len(framework.All()))
	for _, fw := range framework.All() {
		names = append(names, fw.String())
	}
	return strings.Join(names, ", ")
}
