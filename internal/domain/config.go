package domain

import "fmt"

// Config holds run configuration loaded from .covstat.yaml.
type Config struct {
	Tools          []string             `yaml:"tools"           json:"tools"`
	Subjects       []string             `yaml:"subjects"        json:"subjects"`
	Delimiter      string               `yaml:"delimiter"       json:"delimiter"`
	Locale         string               `yaml:"locale"          json:"locale"`
	OutputDir      string               `yaml:"output_dir"      json:"output_dir,omitempty"`
	Workers        int                  `yaml:"workers"         json:"workers"`
	Skip           []Category           `yaml:"skip"            json:"skip,omitempty"`
	LineCoverage   LineCoverageConfig   `yaml:"line_coverage"   json:"line_coverage"`
	ActionCoverage ActionCoverageConfig `yaml:"action_coverage" json:"action_coverage"`
	Ochiai         OchiaiConfig         `yaml:"ochiai"          json:"ochiai"`
}

// LineCoverageConfig controls post-hoc calibration of line coverage means.
// Expected is keyed by tool name.
type LineCoverageConfig struct {
	Calibrate bool               `yaml:"calibrate" json:"calibrate"`
	Expected  map[string]float64 `yaml:"expected"  json:"expected,omitempty"`
}

// ActionCoverageConfig selects the file that carries every tool's action
// coverage rows and the Type filters to run.
type ActionCoverageConfig struct {
	SourceTool string       `yaml:"source_tool" json:"source_tool"`
	Types      []TypeFilter `yaml:"types"       json:"types"`
	Extension  string       `yaml:"extension"   json:"extension"`
}

// OchiaiConfig describes the per-subject Ochiai score layout.
type OchiaiConfig struct {
	Dir       string `yaml:"dir"       json:"dir"`
	Token     string `yaml:"token"     json:"token"`
	Extension string `yaml:"extension" json:"extension"`
}

// DefaultConfig returns the tool and subject sets of the reference study.
func DefaultConfig() Config {
	return Config{
		Tools:     []string{"ACCUMULO", "AMBARI", "OOZIE", "HADOOP", "JCR", "LUCENE", "CoreBench"},
		Subjects:  []string{"Chart", "Closure", "Lang", "Math", "Time"},
		Delimiter: "\t",
		Locale:    "de",
		Workers:   1,
		LineCoverage: LineCoverageConfig{
			Expected: map[string]float64{
				"ACCUMULO":  0.598,
				"AMBARI":    0.62,
				"OOZIE":     0.67,
				"HADOOP":    0.68,
				"JCR":       0.69,
				"LUCENE":    0.67,
				"CoreBench": 0.6,
			},
		},
		ActionCoverage: ActionCoverageConfig{
			Types:     []TypeFilter{TypeCoverage, TypeInverseCoverage},
			Extension: "txt",
		},
		Ochiai: OchiaiConfig{
			Dir:       "Defects4J",
			Token:     "ochiai",
			Extension: "txt",
		},
	}
}

// ActionSourceTool returns the tool directory holding the ActionCoverage file.
func (c Config) ActionSourceTool() string {
	if c.ActionCoverage.SourceTool != "" {
		return c.ActionCoverage.SourceTool
	}
	if len(c.Tools) > 0 {
		return c.Tools[0]
	}
	return ""
}

// Expected returns the calibration target for a tool, if calibration is on
// and a positive target is configured.
func (c Config) Expected(tool string) (float64, bool) {
	if !c.LineCoverage.Calibrate {
		return 0, false
	}
	v, ok := c.LineCoverage.Expected[tool]
	if !ok || v == 0 {
		return 0, false
	}
	return v, true
}

// IsSkipped reports whether a category is excluded from runs.
func (c Config) IsSkipped(cat Category) bool {
	for _, s := range c.Skip {
		if s == cat {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Tools))
	for i, t := range c.Tools {
		if t == "" {
			return fmt.Errorf("tool %d: name is required", i)
		}
		if seen[t] {
			return fmt.Errorf("tool %q is listed twice", t)
		}
		seen[t] = true
	}
	for i, s := range c.Subjects {
		if s == "" {
			return fmt.Errorf("subject %d: name is required", i)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	for _, cat := range c.Skip {
		if !IsValidCategory(cat) {
			return fmt.Errorf("unknown category %q in skip (valid: %v)", cat, Categories)
		}
	}
	for _, tf := range c.ActionCoverage.Types {
		if !isValidTypeFilter(tf) {
			return fmt.Errorf("unknown action coverage type %q (valid: %v)", tf, ValidTypeFilters)
		}
	}
	for tool, v := range c.LineCoverage.Expected {
		if v < 0 {
			return fmt.Errorf("line_coverage.expected[%s] must not be negative, got %g", tool, v)
		}
	}
	return nil
}

func isValidTypeFilter(tf TypeFilter) bool {
	for _, v := range ValidTypeFilters {
		if v == tf {
			return true
		}
	}
	return false
}
