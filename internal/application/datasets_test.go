package application_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covstat/covstat/internal/domain"
)

func TestPipeline_Datasets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ToolA/FileCoverage", fileCoverageReport)
	writeFile(t, root, "ToolA/ActionCoverage.txt", actionCoverageReport)
	writeFile(t, root, "Defects4J/Chart_1/ochiai.txt", ochiaiReport)
	cfg := testConfig("ToolA", "ToolB")
	cfg.Skip = []domain.Category{domain.CategoryLineCoverage}

	datasets := newPipeline(t, nil).Datasets(root, cfg)

	// 2 file coverage + 1 action coverage + 2 subjects
	require.Len(t, datasets, 5)
	assert.Equal(t, domain.CategoryFileCoverage, datasets[0].Category)
	assert.Equal(t, []string{filepath.Join(root, "ToolA", "FileCoverage")}, datasets[0].Paths)
	assert.Empty(t, datasets[1].Paths)
	assert.Equal(t, domain.CategoryActionCoverage, datasets[2].Category)
	assert.Len(t, datasets[2].Paths, 1)
	assert.Equal(t, "Chart", datasets[3].Name)
	assert.Len(t, datasets[3].Paths, 1)
	assert.Empty(t, datasets[4].Paths)
}
