package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/goldenstore"
	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/tui"
	"github.com/loopsleuth/sleuthbench/internal/application"
)

func newListCmd() *cobra.Command {
	var (
		path       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered checks and their golden status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}

			store := goldenstore.New(cfg.Root, cfg.GoldenDir)
			svc := application.NewRunService(nil, nil, store, nil, cfg)

			checks, err := svc.DiscoverChecks(nil)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(checks)
			}

			hasGolden := func(key string) bool {
				_, err := store.Load(key)
				return err == nil
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheckList(checks, hasGolden))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Harness root directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
