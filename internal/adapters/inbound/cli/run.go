package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covstat/covstat/internal/adapters/outbound/artifact"
	"github.com/covstat/covstat/internal/adapters/outbound/gitinfo"
	"github.com/covstat/covstat/internal/adapters/outbound/history"
	"github.com/covstat/covstat/internal/adapters/outbound/locale"
	"github.com/covstat/covstat/internal/adapters/outbound/locator"
	"github.com/covstat/covstat/internal/adapters/outbound/parser"
	"github.com/covstat/covstat/internal/adapters/outbound/tui"
	"github.com/covstat/covstat/internal/application"
)

func newRunCmd() *cobra.Command {
	var (
		jsonOutput bool
		strict     bool
		outDir     string
		workers    int
		loc        string
		only       []string
	)

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Aggregate every report category and write the artifacts",
		Long: "Run the file coverage, line coverage, action coverage and Ochiai passes over the " +
			"per-tool report directories under path. A tool whose report is missing or broken " +
			"is logged and skipped; the remaining tools are still written.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.OutputDir = outDir
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("locale") {
				cfg.Locale = loc
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			cats, err := parseCategories(only)
			if err != nil {
				return err
			}
			formatter, err := locale.New(cfg.Locale)
			if err != nil {
				return err
			}

			log := newLogger(cmd)
			dir := outputDir(root, cfg)
			pipeline := application.NewPipeline(
				locator.New(),
				parser.New(),
				formatter,
				artifact.New(dir),
				log,
			)
			summary := pipeline.Run(root, cfg, cats...)

			// Attach git commit hash if available
			if hash, err := gitinfo.New().CommitHash(root); err == nil {
				summary.CommitHash = hash
			}

			if err := history.New().Save(dir, summary.Entry()); err != nil {
				log.Warn("saving run history failed", "err", err) // best-effort
			}

			if jsonOutput {
				if err := renderJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRun(summary))
			}

			if strict && !summary.Clean() {
				return fmt.Errorf("run finished with incomplete results")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run summary as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 1 if any tool result is not ok")
	cmd.Flags().StringVar(&outDir, "output-dir", "", "Directory for artifacts (defaults to path)")
	cmd.Flags().IntVar(&workers, "workers", 1, "Tools processed concurrently per pass")
	cmd.Flags().StringVar(&loc, "locale", "", "Locale for decimal separators in CSV artifacts (default de)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only these categories (FileCoverage, LineCoverage, ActionCoverage, Ochiai)")

	return cmd
}
