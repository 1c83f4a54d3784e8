package application

import (
	"strings"

	"github.com/covstat/covstat/internal/domain"
)

// Artifact file names, kept byte-compatible with the downstream plotting
// scripts, including the historical "Converage" spelling.
const (
	FileCoverageArtifact = "myFileCoverage.csv"
	LineCoverageArtifact = "myLineCoverage.csv"
	OchiaiArtifact       = "defect4j.json"
)

const fieldSeparator = ";"

// ActionCoverageArtifact returns the artifact name for one Type filter.
func ActionCoverageArtifact(filter domain.TypeFilter) string {
	return "myActionConverage" + string(filter) + ".csv"
}

// subjectSummary is one object of the Ochiai JSON array.
type subjectSummary struct {
	Name     string        `json:"name"`
	Sum2     domain.Number `json:"sum2"`
	Average2 domain.Number `json:"average2"`
	Sum1     domain.Number `json:"sum1"`
	Average1 domain.Number `json:"average1"`
}

func newSubjectSummary(r domain.ToolResult) subjectSummary {
	s := subjectSummary{Name: r.Name}
	s.Sum2, _ = r.Metric("sum2")
	s.Average2, _ = r.Metric("average2")
	s.Sum1, _ = r.Metric("sum1")
	s.Average1, _ = r.Metric("average1")
	return s
}

// Lines renders a delimited pass as artifact lines: one per result in
// declared order, then the footer if any.
func Lines(pass domain.PassResult, f domain.NumberFormatter) []string {
	lines := make([]string, 0, len(pass.Results)+1)
	for _, r := range pass.Results {
		lines = append(lines, line(f, r.Name, r.Columns...))
	}
	if pass.Footer != nil {
		lines = append(lines, line(f, pass.Footer.Name, pass.Footer.Value))
	}
	return lines
}

func line(f domain.NumberFormatter, name string, values ...domain.Number) string {
	fields := make([]string, 0, len(values)+1)
	fields = append(fields, name)
	for _, v := range values {
		fields = append(fields, f.Format(float64(v)))
	}
	return strings.Join(fields, fieldSeparator)
}

func (p *Pipeline) writeLines(pass *domain.PassResult, name string) {
	if p.writer == nil {
		return
	}
	path, err := p.writer.WriteLines(name, Lines(*pass, p.formatter))
	p.recordArtifact(pass, path, err)
}

func (p *Pipeline) writeJSON(pass *domain.PassResult, name string, items []any) {
	if p.writer == nil {
		return
	}
	path, err := p.writer.WriteJSONArray(name, items)
	p.recordArtifact(pass, path, err)
}

func (p *Pipeline) recordArtifact(pass *domain.PassResult, path string, err error) {
	if err != nil {
		p.log.Error("writing artifact failed", "category", pass.Category, "filter", pass.Filter, "err", err)
		pass.Error = err.Error()
		return
	}
	pass.Artifact = path
	p.log.Info("wrote artifact", "category", pass.Category, "filter", pass.Filter, "path", path, "results", len(pass.Results))
}
