package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	harnessconfig "github.com/loopsleuth/sleuthbench/internal/adapters/outbound/config"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/enumerator"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/gitinfo"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/goldenstore"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/runner"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/tui"
	"github.com/loopsleuth/sleuthbench/internal/application"
	"github.com/loopsleuth/sleuthbench/internal/domain"
)

func newRunCmd() *cobra.Command {
	var (
		path         string
		binary       string
		model        string
		toolConfig   string
		checksFilter string
		updateGolden bool
		timeout      time.Duration
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run checks and verify against golden baselines",
		Long:  "Run the analyzer once per fixture file, parse each report, and diff the findings against the recorded golden baseline. With --update-golden the current findings become the new baseline instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			if binary != "" {
				cfg.Binary = binary
			}
			if model != "" {
				cfg.Model = model
			}
			if toolConfig != "" {
				cfg.ToolConfig = toolConfig
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}

			out := cmd.OutOrStdout()
			// Keep stdout machine-readable in JSON mode; heartbeats and
			// command echoes move to stderr.
			runnerOut := out
			if jsonOutput {
				runnerOut = cmd.ErrOrStderr()
			}
			run := runner.New(runner.WithOutput(runnerOut), runner.WithTimeout(cfg.Timeout))
			store := goldenstore.New(cfg.Root, cfg.GoldenDir)
			svc := application.NewRunService(enumerator.New(), run, store, gitinfo.New(), cfg)

			checks, err := svc.DiscoverChecks(splitChecks(checksFilter))
			if err != nil {
				return err
			}

			observe := func(result domain.CheckResult) {
				fmt.Fprintln(out)
				fmt.Fprint(out, tui.RenderCheckResult(result))
			}
			if jsonOutput {
				observe = nil
			}

			summary := svc.RunAll(cmd.Context(), checks, updateGolden, observe)

			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(summary); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out)
				fmt.Fprint(out, tui.RenderSummary(summary))
			}

			if !summary.Passed() {
				return fmt.Errorf("%d of %d checks failed", summary.Failures, len(summary.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Harness root directory")
	cmd.Flags().StringVar(&binary, "binary", "", "Analyzer binary (default: <root>/target/release/loopsleuth_bin)")
	cmd.Flags().StringVar(&model, "model", "", "Model path (default: $"+domain.ModelEnvVar+" or ~/.loopsleuth/models)")
	cmd.Flags().StringVar(&toolConfig, "config", "", "Analyzer config file forwarded to the tool")
	cmd.Flags().StringVar(&checksFilter, "checks", "", "Comma-separated list of check keys to run")
	cmd.Flags().BoolVar(&updateGolden, "update-golden", false, "Rewrite golden baselines from current analyzer output")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-check analyzer timeout (0 = none)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func loadConfig(path string) (domain.HarnessConfig, error) {
	cfg, err := harnessconfig.New().Load(path)
	if err != nil {
		return domain.HarnessConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func splitChecks(filter string) []string {
	if strings.TrimSpace(filter) == "" {
		return nil
	}
	return strings.Split(filter, ",")
}
