package tui_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/covstat/covstat/internal/adapters/outbound/tui"
	"github.com/covstat/covstat/internal/domain"
)

func sampleSummary() *domain.RunSummary {
	return &domain.RunSummary{
		Root:       "/data/study",
		CommitHash: "0123456789abcdef",
		Passes: []domain.PassResult{
			{
				Category: domain.CategoryFileCoverage,
				Columns:  []string{"value"},
				Results: []domain.ToolResult{
					{Name: "JCR", Status: domain.StatusOK, Columns: []domain.Number{0.5}},
					{Name: "LUCENE", Status: domain.StatusMissing, Error: "dataset not found", Columns: []domain.Number{0}},
				},
				Footer:   &domain.Metric{Name: "average", Value: 0.25},
				Artifact: "/data/study/myFileCoverage.csv",
			},
			{
				Category: domain.CategoryActionCoverage,
				Filter:   domain.TypeInverseCoverage,
				Columns:  []string{"average"},
				Results: []domain.ToolResult{
					{Name: "JCR", Status: domain.StatusDegraded, Columns: []domain.Number{domain.Number(math.NaN())}},
				},
			},
		},
	}
}

func TestRenderRun_ContainsHeaderAndCommit(t *testing.T) {
	output := tui.RenderRun(sampleSummary())
	assert.Contains(t, output, "covstat")
	assert.Contains(t, output, "/data/study")
	assert.Contains(t, output, "0123456")
	assert.NotContains(t, output, "0123456789abcdef")
}

func TestRenderRun_ContainsPassesAndValues(t *testing.T) {
	output := tui.RenderRun(sampleSummary())
	assert.Contains(t, output, "File Coverage")
	assert.Contains(t, output, "Action Coverage (Inverse Coverage)")
	assert.Contains(t, output, "0.5000")
	assert.Contains(t, output, "0.2500")
	assert.Contains(t, output, "NaN")
	assert.Contains(t, output, "myFileCoverage.csv")
	assert.Contains(t, output, "dataset not found")
}

func TestRenderRun_StatusCounts(t *testing.T) {
	output := tui.RenderRun(sampleSummary())
	assert.Contains(t, output, "1 Missing")
	assert.Contains(t, output, "1 Degraded")
	assert.Contains(t, output, "incomplete")
}

func TestRenderRun_Empty(t *testing.T) {
	output := tui.RenderRun(&domain.RunSummary{Root: "/data"})
	assert.Contains(t, output, "No passes selected.")
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "Line Coverage", tui.Heading(domain.CategoryLineCoverage, ""))
	assert.Equal(t, "Action Coverage (All)", tui.Heading(domain.CategoryActionCoverage, domain.TypeAll))
}

func TestRenderDatasets(t *testing.T) {
	output := tui.RenderDatasets([]domain.Dataset{
		{Category: domain.CategoryFileCoverage, Name: "JCR", Pattern: "/d/JCR", Paths: []string{"/d/JCR/FileCoverage", "/d/JCR/FileCoverage.old"}},
		{Category: domain.CategoryFileCoverage, Name: "OOZIE", Pattern: "/d/OOZIE"},
		{Category: domain.CategoryOchiai, Name: "Chart", Pattern: "/d/Defects4J/Chart_*", Paths: []string{"/d/Defects4J/Chart_1/ochiai.txt"}},
	})
	assert.Contains(t, output, "File Coverage")
	assert.Contains(t, output, "/d/JCR/FileCoverage")
	assert.Contains(t, output, "(+1)")
	assert.Contains(t, output, "not found in /d/OOZIE")
	assert.Contains(t, output, "Ochiai")
}

func TestRenderDatasets_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderDatasets(nil), "Nothing to list.")
}

func TestRenderHistory(t *testing.T) {
	output := tui.RenderHistory([]domain.RunEntry{
		{Timestamp: "2026-02-25T10:00:00Z", CommitHash: "abc1234def", Passes: 5, Clean: true},
		{Timestamp: "2026-02-26T11:30:00Z", Passes: 6, Counts: map[domain.Status]int{domain.StatusMissing: 3}},
	})
	assert.Contains(t, output, "Run History")
	assert.Contains(t, output, "2026-02-25 10:00")
	assert.Contains(t, output, "abc1234")
	assert.Contains(t, output, "clean")
	assert.Contains(t, output, "incomplete")
	assert.Contains(t, output, "3 missing")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No run history found.")
}
