package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covstat/covstat/internal/adapters/outbound/config"
	"github.com/covstat/covstat/internal/domain"
	"github.com/covstat/covstat/internal/logger"
)

func resolveRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// loadConfig reads the config for root, honoring the --config flag.
func loadConfig(cmd *cobra.Command, root string) (domain.Config, error) {
	loader := config.New()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader = config.NewWithFile(path)
	}
	cfg, err := loader.Load(root)
	if err != nil {
		return domain.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logger.New(cmd.ErrOrStderr(), verbose)
}

// parseCategories maps --only values to categories, ignoring case.
func parseCategories(values []string) ([]domain.Category, error) {
	var cats []domain.Category
	for _, v := range values {
		cat, ok := lookupCategory(v)
		if !ok {
			return nil, fmt.Errorf("unknown category %q (valid: %v)", v, domain.Categories)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

func lookupCategory(v string) (domain.Category, bool) {
	for _, c := range domain.Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(v)) {
			return c, true
		}
	}
	return "", false
}

// outputDir resolves the artifact directory: the dataset root unless
// configured, relative paths taken from the root.
func outputDir(root string, cfg domain.Config) string {
	switch {
	case cfg.OutputDir == "":
		return root
	case filepath.IsAbs(cfg.OutputDir):
		return cfg.OutputDir
	default:
		return filepath.Join(root, cfg.OutputDir)
	}
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
