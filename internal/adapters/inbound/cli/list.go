package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covstat/covstat/internal/adapters/outbound/locale"
	"github.com/covstat/covstat/internal/adapters/outbound/locator"
	"github.com/covstat/covstat/internal/adapters/outbound/parser"
	"github.com/covstat/covstat/internal/adapters/outbound/tui"
	"github.com/covstat/covstat/internal/application"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "Show which report files each tool resolves to",
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
			formatter, err := locale.New(cfg.Locale)
			if err != nil {
				return err
			}

			pipeline := application.NewPipeline(locator.New(), parser.New(), formatter, nil, newLogger(cmd))
			datasets := pipeline.Datasets(root, cfg)

			if jsonOutput {
				return renderJSON(cmd, datasets)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tools:    %s\n", strings.Join(cfg.Tools, ", "))
			fmt.Fprintf(out, "Subjects: %s\n", strings.Join(cfg.Subjects, ", "))
			fmt.Fprint(out, tui.RenderDatasets(datasets))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output datasets as JSON")

	return cmd
}
