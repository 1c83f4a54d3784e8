package artifact_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covstat/covstat/internal/adapters/outbound/artifact"
	"github.com/covstat/covstat/internal/domain"
)

func TestFileWriter_WriteLines(t *testing.T) {
	dir := t.TempDir()
	w := artifact.New(dir)

	path, err := w.WriteLines("myFileCoverage.csv", []string{"A;0,5", "average;0,5"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "myFileCoverage.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A;0,5\naverage;0,5", string(data))
}

func TestFileWriter_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := artifact.New(dir).WriteLines("x.csv", nil)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "x.csv"))
}

func TestFileWriter_WriteJSONArray(t *testing.T) {
	type summary struct {
		Name     string        `json:"name"`
		Average1 domain.Number `json:"average1"`
	}
	dir := t.TempDir()
	path, err := artifact.New(dir).WriteJSONArray("defect4j.json", []any{
		summary{Name: "Chart", Average1: 0.2},
		summary{Name: "Lang", Average1: domain.Number(math.NaN())},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Chart","average1":0.2}`+"\n,"+`{"name":"Lang","average1":null}]`, string(data))
}

func TestFileWriter_EmptyJSONArray(t *testing.T) {
	path, err := artifact.New(t.TempDir()).WriteJSONArray("defect4j.json", nil)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileWriter_LockedByAnotherRun(t *testing.T) {
	dir := t.TempDir()
	held := flock.New(filepath.Join(dir, ".covstat.lock"))
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Close()

	_, err = artifact.New(dir).WriteLines("x.csv", []string{"a"})
	assert.True(t, errors.Is(err, domain.ErrLocked))
}
