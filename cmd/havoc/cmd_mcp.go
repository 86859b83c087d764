package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/havoc/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the Model Context Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(version)
			return server.Serve(cmd.Context())
		},
	}
}
