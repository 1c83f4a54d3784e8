package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/covstat/covstat/internal/domain"
)

// FileName is the config file looked up in the dataset root.
const FileName = ".covstat.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .covstat.yaml.
type YAMLLoader struct {
	path string
}

// New creates a YAMLLoader that reads FileName from the dataset root.
func New() *YAMLLoader { return &YAMLLoader{} }

// NewWithFile creates a YAMLLoader bound to an explicit config file, which
// must exist.
func NewWithFile(path string) *YAMLLoader { return &YAMLLoader{path: path} }

// Load reads the config for root. Returns DefaultConfig if no explicit file
// was given and root has no .covstat.yaml.
func (l *YAMLLoader) Load(root string) (domain.Config, error) {
	path := l.path
	if path == "" {
		path = filepath.Join(root, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && l.path == "" {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	// Validate before merging, so typos in the user's input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of the defaults.
// Explicit (non-zero) values always win; lists replace, never append.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	if len(override.Tools) > 0 {
		result.Tools = override.Tools
	}
	if len(override.Subjects) > 0 {
		result.Subjects = override.Subjects
	}
	if override.Delimiter != "" {
		result.Delimiter = override.Delimiter
	}
	if override.Locale != "" {
		result.Locale = override.Locale
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Workers > 0 {
		result.Workers = override.Workers
	}
	if len(override.Skip) > 0 {
		result.Skip = override.Skip
	}

	result.LineCoverage.Calibrate = override.LineCoverage.Calibrate
	if len(override.LineCoverage.Expected) > 0 {
		result.LineCoverage.Expected = override.LineCoverage.Expected
	}

	if override.ActionCoverage.SourceTool != "" {
		result.ActionCoverage.SourceTool = override.ActionCoverage.SourceTool
	}
	if len(override.ActionCoverage.Types) > 0 {
		result.ActionCoverage.Types = override.ActionCoverage.Types
	}
	if override.ActionCoverage.Extension != "" {
		result.ActionCoverage.Extension = override.ActionCoverage.Extension
	}

	if override.Ochiai.Dir != "" {
		result.Ochiai.Dir = override.Ochiai.Dir
	}
	if override.Ochiai.Token != "" {
		result.Ochiai.Token = override.Ochiai.Token
	}
	if override.Ochiai.Extension != "" {
		result.Ochiai.Extension = override.Ochiai.Extension
	}

	return result
}
