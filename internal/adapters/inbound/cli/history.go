package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covstat/covstat/internal/adapters/outbound/history"
	"github.com/covstat/covstat/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show previous runs recorded in the artifact directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}

			entries, err := history.New().Load(outputDir(root, cfg))
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if jsonOutput {
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")

	return cmd
}
