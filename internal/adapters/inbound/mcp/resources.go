package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerResources registers all sleuthbench MCP resources on the
// given server.
func registerResources(s *server.MCPServer, root string) {
	// 1. sleuthbench://checks - discovered checks with golden status
	s.AddResource(
		mcplib.NewResource(
			"sleuthbench://checks",
			"Checks",
			mcplib.WithResourceDescription("Discoverable checks and their golden baseline status"),
			mcplib.WithMIMEType("application/json"),
		),
		handleChecksResource(root),
	)

	// 2. sleuthbench://golden/{check} - golden record per check (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"sleuthbench://golden/{check}",
			"Golden Record",
			mcplib.WithTemplateDescription("Recorded golden baseline for a specific check"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleGoldenResource(root),
	)
}

func handleChecksResource(root string) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		svc, store, err := newService(root)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		checks, err := svc.DiscoverChecks(nil)
		if err != nil {
			return nil, fmt.Errorf("discovering checks: %w", err)
		}

		listings := make([]checkListing, 0, len(checks))
		for _, check := range checks {
			_, loadErr := store.Load(check.Key)
			listings = append(listings, checkListing{Check: check, HasGolden: loadErr == nil})
		}

		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling checks: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleGoldenResource(root string) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		key := strings.TrimPrefix(request.Params.URI, "sleuthbench://golden/")
		if key == "" || strings.Contains(key, "/") {
			return nil, fmt.Errorf("invalid golden resource URI: %s", request.Params.URI)
		}

		_, store, err := newService(root)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		record, err := store.Load(key)
		if err != nil {
			return nil, fmt.Errorf("loading golden: %w", err)
		}

		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling golden record: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
