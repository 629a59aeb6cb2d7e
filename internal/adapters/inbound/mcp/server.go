package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewSleuthbenchMCPServer creates a new MCP server with all sleuthbench
// tools and resources registered. root is the harness root directory
// (the analyzer repository checkout).
func NewSleuthbenchMCPServer(root string) *server.MCPServer {
	s := server.NewMCPServer(
		"sleuthbench",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, root)
	registerResources(s, root)

	return s
}
