package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/covstat/covstat/internal/adapters/outbound/config"
	"github.com/covstat/covstat/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		tools []string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .covstat.yaml configuration file",
		Long:  "Create a .covstat.yaml holding the default tools, subjects and dataset layout, ready to edit.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			dest := filepath.Join(root, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			if len(tools) > 0 {
				cfg.Tools = tools
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			content, err := generateConfig(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tools, "tools", nil, "Tool directories to aggregate (defaults to the reference study's tools)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .covstat.yaml")

	return cmd
}

func generateConfig(cfg domain.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	header := "# covstat configuration\n" +
		"# Each tool is a directory under the dataset root holding its reports.\n\n"
	return append([]byte(header), data...), nil
}
