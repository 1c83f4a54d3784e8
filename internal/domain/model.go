package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Category identifies a kind of report produced by a fault-localization tool.
type Category string

const (
	CategoryFileCoverage   Category = "FileCoverage"
	CategoryLineCoverage   Category = "LineCoverage"
	CategoryActionCoverage Category = "ActionCoverage"
	CategoryOchiai         Category = "Ochiai"
)

// Categories lists every category in the order a run processes them.
var Categories = []Category{
	CategoryFileCoverage,
	CategoryLineCoverage,
	CategoryActionCoverage,
	CategoryOchiai,
}

// IsValidCategory reports whether c is a known category.
func IsValidCategory(c Category) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// TypeFilter selects ActionCoverage rows by their Type column.
type TypeFilter string

const (
	TypeCoverage        TypeFilter = "Coverage"
	TypeInverseCoverage TypeFilter = "InverseCoverage"
	TypeAll             TypeFilter = "All"
)

// ValidTypeFilters enumerates the closed set of ActionCoverage filters.
var ValidTypeFilters = []TypeFilter{TypeCoverage, TypeInverseCoverage, TypeAll}

// Matches reports whether a row with the given Type value passes the filter.
func (f TypeFilter) Matches(rowType string) bool {
	if f == TypeAll || f == "" {
		return true
	}
	return rowType == string(f)
}

// Status describes how a single tool or subject fared in a pass.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusMissing  Status = "missing"
	StatusFailed   Status = "failed"
)

// Number is a float64 that survives JSON encoding when it is NaN or
// infinite; those values are written as null.
type Number float64

func (n Number) IsNaN() bool { return math.IsNaN(float64(n)) }

// IsFinite reports whether n is neither NaN nor infinite.
func (n Number) IsFinite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Metric is one named aggregate value.
type Metric struct {
	Name  string `json:"name"`
	Value Number `json:"value"`
}

// ToolResult is the outcome of one tool (or benchmark subject) within a pass.
// Columns holds the values emitted into the artifact line, in order; Metrics
// holds every aggregate computed for diagnostics.
type ToolResult struct {
	Name    string   `json:"name"`
	Status  Status   `json:"status"`
	Source  string   `json:"source,omitempty"`
	Error   string   `json:"error,omitempty"`
	Columns []Number `json:"columns"`
	Metrics []Metric `json:"metrics,omitempty"`
}

// Metric returns the named metric value.
func (r ToolResult) Metric(name string) (Number, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// Degraded reports whether any emitted column is not a finite number.
func (r ToolResult) Degraded() bool {
	for _, c := range r.Columns {
		if !c.IsFinite() {
			return true
		}
	}
	return false
}

// PassResult is the outcome of one report category pass.
type PassResult struct {
	Category   Category     `json:"category"`
	Filter     TypeFilter   `json:"filter,omitempty"`
	Columns    []string     `json:"columns"`
	Results    []ToolResult `json:"results"`
	Footer     *Metric      `json:"footer,omitempty"`
	Artifact   string       `json:"artifact,omitempty"`
	Error      string       `json:"error,omitempty"`
	DurationMS int64        `json:"duration_ms"`
}

// Result returns the result for a tool or subject by name.
func (p PassResult) Result(name string) (ToolResult, bool) {
	for _, r := range p.Results {
		if r.Name == name {
			return r, true
		}
	}
	return ToolResult{}, false
}

// CountByStatus tallies results per status.
func (p PassResult) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, r := range p.Results {
		counts[r.Status]++
	}
	return counts
}

// RunSummary collects every pass of one aggregation run.
type RunSummary struct {
	Root       string       `json:"root"`
	CommitHash string       `json:"commit_hash,omitempty"`
	Started    time.Time    `json:"started"`
	Passes     []PassResult `json:"passes"`
}

// Clean reports whether every pass wrote its artifact and every result is ok.
func (s *RunSummary) Clean() bool {
	for _, p := range s.Passes {
		if p.Error != "" {
			return false
		}
		for _, r := range p.Results {
			if r.Status != StatusOK {
				return false
			}
		}
	}
	return true
}

// Dataset is one located report input: the files a tool or subject
// resolves to for a category.
type Dataset struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Pattern  string   `json:"pattern"`
	Paths    []string `json:"paths"`
}

// RunEntry is the compact record of one run kept in the run history.
type RunEntry struct {
	Timestamp  string         `json:"timestamp"`
	CommitHash string         `json:"commit_hash,omitempty"`
	Passes     int            `json:"passes"`
	Clean      bool           `json:"clean"`
	Counts     map[Status]int `json:"counts"`
}

// Entry summarizes the run for the history.
func (s *RunSummary) Entry() RunEntry {
	counts := make(map[Status]int)
	for _, p := range s.Passes {
		for status, n := range p.CountByStatus() {
			counts[status] += n
		}
	}
	return RunEntry{
		Timestamp:  s.Started.Format(time.RFC3339),
		CommitHash: s.CommitHash,
		Passes:     len(s.Passes),
		Clean:      s.Clean(),
		Counts:     counts,
	}
}
