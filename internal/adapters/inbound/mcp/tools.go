package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	harnessconfig "github.com/loopsleuth/sleuthbench/internal/adapters/outbound/config"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/enumerator"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/gitinfo"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/goldenstore"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/runner"
	"github.com/loopsleuth/sleuthbench/internal/application"
	"github.com/loopsleuth/sleuthbench/internal/domain"
)

// registerTools registers all sleuthbench MCP tools on the given server.
func registerTools(s *server.MCPServer, root string) {
	// 1. sleuthbench_list_checks
	s.AddTool(
		mcplib.NewTool("sleuthbench_list_checks",
			mcplib.WithDescription("List the discoverable checks (fixture files) and whether each has a golden baseline"),
		),
		handleListChecks(root),
	)

	// 2. sleuthbench_verify_check
	s.AddTool(
		mcplib.NewTool("sleuthbench_verify_check",
			mcplib.WithDescription("Run the analyzer for one check and verify its findings against the golden baseline. Requires the analyzer binary and model to be present."),
			mcplib.WithString("check",
				mcplib.Required(),
				mcplib.Description("Key of the check to verify"),
			),
		),
		handleRunCheck(root, false),
	)

	// 3. sleuthbench_update_golden
	s.AddTool(
		mcplib.NewTool("sleuthbench_update_golden",
			mcplib.WithDescription("Run the analyzer for one check and rewrite its golden baseline from the current findings"),
			mcplib.WithString("check",
				mcplib.Required(),
				mcplib.Description("Key of the check to re-baseline"),
			),
		),
		handleRunCheck(root, true),
	)

	// 4. sleuthbench_get_golden
	s.AddTool(
		mcplib.NewTool("sleuthbench_get_golden",
			mcplib.WithDescription("Return the golden record for a check as JSON"),
			mcplib.WithString("check",
				mcplib.Required(),
				mcplib.Description("Key of the check"),
			),
		),
		handleGetGolden(root),
	)
}

// newService builds the standard adapter stack. Runner feedback goes to
// io.Discard: heartbeats on stdout would corrupt the stdio transport.
func newService(root string) (*application.RunService, *goldenstore.Store, error) {
	cfg, err := harnessconfig.New().Load(root)
	if err != nil {
		return nil, nil, err
	}
	store := goldenstore.New(cfg.Root, cfg.GoldenDir)
	run := runner.New(runner.WithOutput(io.Discard), runner.WithTimeout(cfg.Timeout))
	svc := application.NewRunService(enumerator.New(), run, store, gitinfo.New(), cfg)
	return svc, store, nil
}

type checkListing struct {
	domain.Check
	HasGolden bool `json:"has_golden"`
}

func handleListChecks(root string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, store, err := newService(root)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		checks, err := svc.DiscoverChecks(nil)
		if err != nil {
			return errorResult(fmt.Sprintf("discovering checks: %v", err)), nil
		}

		listings := make([]checkListing, 0, len(checks))
		for _, check := range checks {
			_, loadErr := store.Load(check.Key)
			listings = append(listings, checkListing{Check: check, HasGolden: loadErr == nil})
		}
		return jsonResult(listings)
	}
}

func handleRunCheck(root string, update bool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		key, err := request.RequireString("check")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc, _, err := newService(root)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		checks, err := svc.DiscoverChecks([]string{key})
		if err != nil {
			return errorResult(fmt.Sprintf("discovering checks: %v", err)), nil
		}
		if len(checks) == 0 {
			return errorResult(fmt.Sprintf("unknown check: %s", key)), nil
		}

		result := svc.RunCheck(ctx, checks[0], update)
		return jsonResult(result)
	}
}

func handleGetGolden(root string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		key, err := request.RequireString("check")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		_, store, err := newService(root)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		record, err := store.Load(key)
		if err != nil {
			return errorResult(fmt.Sprintf("loading golden: %v", err)), nil
		}
		return jsonResult(record)
	}
}

// jsonResult returns a JSON text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
