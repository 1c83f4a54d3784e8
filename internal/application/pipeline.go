package application

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/panics"

	"github.com/covstat/covstat/internal/domain"
	"github.com/covstat/covstat/internal/domain/aggregate"
)

// Pipeline orchestrates the aggregation passes:
// locate → parse → aggregate → collect, per tool, then write one artifact
// per pass. A failure for one tool is logged and recorded on that tool's
// result; it never stops the pass or the run.
type Pipeline struct {
	locator   domain.DatasetLocator
	parser    domain.ReportParser
	formatter domain.NumberFormatter
	writer    domain.ArtifactWriter
	log       *slog.Logger
}

// NewPipeline creates a Pipeline. A nil writer computes passes without
// writing artifacts.
func NewPipeline(
	locator domain.DatasetLocator,
	parser domain.ReportParser,
	formatter domain.NumberFormatter,
	writer domain.ArtifactWriter,
	log *slog.Logger,
) *Pipeline {
	return &Pipeline{
		locator:   locator,
		parser:    parser,
		formatter: formatter,
		writer:    writer,
		log:       log,
	}
}

// Run executes every selected pass in the fixed order: file coverage, line
// coverage, action coverage once per type filter, Ochiai. An empty only
// selects every category not skipped by cfg.
func (p *Pipeline) Run(root string, cfg domain.Config, only ...domain.Category) *domain.RunSummary {
	summary := &domain.RunSummary{Root: root, Started: time.Now()}

	for _, cat := range domain.Categories {
		if !selected(cat, cfg, only) {
			p.log.Debug("skipping category", "category", cat)
			continue
		}
		switch cat {
		case domain.CategoryFileCoverage:
			summary.Passes = append(summary.Passes, p.FileCoverage(root, cfg))
		case domain.CategoryLineCoverage:
			summary.Passes = append(summary.Passes, p.LineCoverage(root, cfg))
		case domain.CategoryActionCoverage:
			for _, filter := range cfg.ActionCoverage.Types {
				summary.Passes = append(summary.Passes, p.ActionCoverage(root, cfg, filter))
			}
		case domain.CategoryOchiai:
			summary.Passes = append(summary.Passes, p.Ochiai(root, cfg))
		}
	}

	return summary
}

func selected(cat domain.Category, cfg domain.Config, only []domain.Category) bool {
	if len(only) == 0 {
		return !cfg.IsSkipped(cat)
	}
	for _, o := range only {
		if o == cat {
			return true
		}
	}
	return false
}

// FileCoverage computes the mean share of fixed files covered by induced
// files for each tool, plus the average across tools.
func (p *Pipeline) FileCoverage(root string, cfg domain.Config) domain.PassResult {
	start := time.Now()
	cat := domain.CategoryFileCoverage
	pass := domain.PassResult{Category: cat, Columns: []string{"value"}}

	pass.Results = p.eachTool(cfg.Tools, cfg.Workers, func(tool string) domain.ToolResult {
		path, records, err := p.loadRecords(filepath.Join(root, tool), cat, "", cfg.Delimiter, aggregate.FileCoverageFields)
		if err != nil {
			return p.absent(cat, tool, path, err, 1)
		}
		stats := aggregate.FileCoverage(records)
		return p.settle(cat, domain.ToolResult{
			Name:    tool,
			Source:  path,
			Columns: []domain.Number{domain.Number(stats.CoverPerLength)},
			Metrics: stats.Metrics(),
		})
	})

	var total float64
	for _, r := range pass.Results {
		total += float64(r.Columns[0])
	}
	pass.Footer = &domain.Metric{Name: "average", Value: domain.Number(total / float64(len(cfg.Tools)))}

	p.writeLines(&pass, FileCoverageArtifact)
	pass.DurationMS = time.Since(start).Milliseconds()
	return pass
}

// LineCoverage computes the per-tool line coverage means, calibrated
// against the configured expected values when calibration is on.
func (p *Pipeline) LineCoverage(root string, cfg domain.Config) domain.PassResult {
	start := time.Now()
	cat := domain.CategoryLineCoverage
	pass := domain.PassResult{Category: cat, Columns: []string{"coverage", "directCoverage", "coverageFlow"}}

	pass.Results = p.eachTool(cfg.Tools, cfg.Workers, func(tool string) domain.ToolResult {
		path, records, err := p.loadRecords(filepath.Join(root, tool), cat, "", cfg.Delimiter, aggregate.LineCoverageFields)
		if err != nil {
			return p.absent(cat, tool, path, err, 3)
		}
		expected, ok := cfg.Expected(tool)
		stats := aggregate.LineCoverage(records, expected, ok)
		if ok {
			p.log.Debug("calibrated line coverage", "tool", tool, "expected", expected, "ratio", stats.Ratio)
		}
		return p.settle(cat, domain.ToolResult{
			Name:   tool,
			Source: path,
			Columns: []domain.Number{
				domain.Number(stats.Coverage),
				domain.Number(stats.DirectCoverage),
				domain.Number(stats.CoverageFlow),
			},
			Metrics: stats.Metrics(),
		})
	})

	p.writeLines(&pass, LineCoverageArtifact)
	pass.DurationMS = time.Since(start).Milliseconds()
	return pass
}

// ActionCoverage reads the single ActionCoverage report kept in the source
// tool's directory and averages Value per tool, keyed by the Index column.
func (p *Pipeline) ActionCoverage(root string, cfg domain.Config, filter domain.TypeFilter) domain.PassResult {
	start := time.Now()
	cat := domain.CategoryActionCoverage
	pass := domain.PassResult{Category: cat, Filter: filter, Columns: []string{"average"}}
	defer func() { pass.DurationMS = time.Since(start).Milliseconds() }()

	source := cfg.ActionSourceTool()
	path, records, err := p.loadRecords(filepath.Join(root, source), cat, cfg.ActionCoverage.Extension, cfg.Delimiter, aggregate.ActionCoverageFields)
	if err != nil {
		p.log.Warn("action coverage not available", "category", cat, "tool", source, "filter", filter, "err", err)
		pass.Error = err.Error()
		return pass
	}

	groups := aggregate.ActionCoverage(records, filter)
	known := make(map[string]bool, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		known[tool] = true
		g, ok := groups[tool]
		if !ok {
			p.log.Warn("no action coverage rows for tool", "category", cat, "tool", tool, "filter", filter)
			pass.Results = append(pass.Results, domain.ToolResult{
				Name:    tool,
				Status:  domain.StatusMissing,
				Source:  path,
				Error:   "no rows for tool",
				Columns: []domain.Number{domain.Number(math.NaN())},
			})
			continue
		}
		pass.Results = append(pass.Results, p.settle(cat, domain.ToolResult{
			Name:    tool,
			Source:  path,
			Columns: []domain.Number{domain.Number(g.Mean())},
			Metrics: []domain.Metric{
				{Name: "count", Value: domain.Number(g.Count)},
				{Name: "sum", Value: domain.Number(g.Sum)},
			},
		}))
	}
	for _, key := range groups.Keys() {
		if !known[key] {
			p.log.Warn("ignoring rows for unknown tool", "category", cat, "index", key, "rows", groups[key].Count)
		}
	}

	p.writeLines(&pass, ActionCoverageArtifact(filter))
	return pass
}

// Ochiai sums and averages the two raw Ochiai score columns over every
// score file of each benchmark subject.
func (p *Pipeline) Ochiai(root string, cfg domain.Config) domain.PassResult {
	start := time.Now()
	cat := domain.CategoryOchiai
	pass := domain.PassResult{Category: cat, Columns: []string{"sum2", "average2", "sum1", "average1"}}

	pass.Results = p.eachTool(cfg.Subjects, cfg.Workers, func(subject string) domain.ToolResult {
		dir := filepath.Join(root, cfg.Ochiai.Dir, subject+"_*")
		res := domain.ToolResult{Name: subject, Source: dir}

		paths, err := p.locator.Locate(dir, cfg.Ochiai.Token, cfg.Ochiai.Extension)
		if err != nil {
			p.log.Warn("locating ochiai files failed", "category", cat, "subject", subject, "err", err)
		}

		var rows [][]string
		for _, path := range paths {
			r, err := p.parser.ParseRows(path, cfg.Delimiter)
			if err != nil {
				p.log.Warn("skipping unreadable ochiai file", "category", cat, "subject", subject, "path", path, "err", err)
				continue
			}
			rows = append(rows, r...)
		}

		stats := aggregate.Ochiai(rows)
		res.Metrics = stats.Metrics()
		for _, m := range res.Metrics {
			res.Columns = append(res.Columns, m.Value)
		}

		if len(paths) == 0 {
			p.log.Warn("dataset not found", "category", cat, "subject", subject, "pattern", dir)
			res.Status = domain.StatusMissing
			res.Error = domain.ErrMissingDataset.Error()
			return res
		}
		return p.settle(cat, res)
	})

	items := make([]any, 0, len(pass.Results))
	for _, r := range pass.Results {
		items = append(items, newSubjectSummary(r))
	}
	p.writeJSON(&pass, OchiaiArtifact, items)
	pass.DurationMS = time.Since(start).Milliseconds()
	return pass
}

// eachTool maps fn over names, keeping declared order in the result
// regardless of worker count. Panics are contained to the failing name.
func (p *Pipeline) eachTool(names []string, workers int, fn func(string) domain.ToolResult) []domain.ToolResult {
	mapper := iter.Mapper[string, domain.ToolResult]{MaxGoroutines: max(workers, 1)}
	return mapper.Map(names, func(name *string) domain.ToolResult {
		return p.isolate(*name, fn)
	})
}

func (p *Pipeline) isolate(name string, fn func(string) domain.ToolResult) (res domain.ToolResult) {
	var pc panics.Catcher
	pc.Try(func() { res = fn(name) })
	if r := pc.Recovered(); r != nil {
		p.log.Error("tool processing panicked", "tool", name, "err", r.AsError())
		return domain.ToolResult{Name: name, Status: domain.StatusFailed, Error: fmt.Sprintf("panic: %v", r.Value)}
	}
	return res
}

// loadRecords locates the first report of a category in dir and parses it.
func (p *Pipeline) loadRecords(dir string, cat domain.Category, ext, delim string, fields []domain.Field) (string, []domain.Record, error) {
	matches, err := p.locator.Locate(dir, string(cat), ext)
	if err != nil {
		return "", nil, err
	}
	if len(matches) == 0 {
		return "", nil, fmt.Errorf("%w: no %s report in %s", domain.ErrMissingDataset, cat, dir)
	}

	path := matches[0]
	p.log.Debug("located dataset", "category", cat, "path", path, "matches", len(matches))

	table, err := p.parser.ParseTable(path, delim)
	if err != nil {
		return path, nil, err
	}
	records := table.Records(fields...)
	if len(records) == 0 {
		return path, nil, fmt.Errorf("%w: %s", domain.ErrEmptyDataset, path)
	}
	return path, records, nil
}

// absent records a tool whose dataset could not be used, contributing
// zeros to the artifact.
func (p *Pipeline) absent(cat domain.Category, tool, path string, err error, columns int) domain.ToolResult {
	status := domain.StatusFailed
	if errors.Is(err, domain.ErrMissingDataset) || errors.Is(err, domain.ErrEmptyDataset) {
		status = domain.StatusMissing
	}
	p.log.Warn("dataset unavailable", "category", cat, "tool", tool, "status", status, "err", err)
	return domain.ToolResult{
		Name:    tool,
		Status:  status,
		Source:  path,
		Error:   err.Error(),
		Columns: make([]domain.Number, columns),
	}
}

// settle marks a computed result ok or degraded.
func (p *Pipeline) settle(cat domain.Category, res domain.ToolResult) domain.ToolResult {
	res.Status = domain.StatusOK
	if res.Degraded() {
		res.Status = domain.StatusDegraded
		for i, c := range res.Columns {
			if !c.IsFinite() {
				p.log.Warn("degraded result", "category", cat, "tool", res.Name, "column", i, "value", float64(c))
			}
		}
	}
	return res
}
