package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/loopsleuth/sleuthbench/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the sleuthbench MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start sleuthbench MCP server (stdio)",
		Long:  "Start the sleuthbench MCP server using stdio transport. This lets AI coding assistants list checks, inspect golden baselines, and trigger verification runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = "."
			}
			s := mcpadapter.NewSleuthbenchMCPServer(path)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Harness root (defaults to current working directory)")

	return cmd
}
