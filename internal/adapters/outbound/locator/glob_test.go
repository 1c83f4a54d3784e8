package locator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/covstat/covstat/internal/adapters/outbound/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestGlobLocator_MatchesToken(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "JCR", "jcr-FileCoverage"))
	touch(t, filepath.Join(root, "JCR", "jcr-LineCoverage"))

	matches, err := locator.New().Locate(filepath.Join(root, "JCR"), "FileCoverage", "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "JCR", "jcr-FileCoverage")}, matches)
}

func TestGlobLocator_Extension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "JCR", "ActionCoverage.txt"))
	touch(t, filepath.Join(root, "JCR", "ActionCoverage.csv"))

	matches, err := locator.New().Locate(filepath.Join(root, "JCR"), "ActionCoverage", "txt")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ActionCoverage.txt", filepath.Base(matches[0]))
}

func TestGlobLocator_WildcardDirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Defects4J", "Lang_2", "b-ochiai.txt"))
	touch(t, filepath.Join(root, "Defects4J", "Lang_1", "a-ochiai.txt"))
	touch(t, filepath.Join(root, "Defects4J", "Math_1", "ochiai.txt"))

	matches, err := locator.New().Locate(filepath.Join(root, "Defects4J", "Lang_*"), "ochiai", "txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Defects4J", "Lang_1", "a-ochiai.txt"),
		filepath.Join(root, "Defects4J", "Lang_2", "b-ochiai.txt"),
	}, matches)
}

func TestGlobLocator_NoMatchIsNotAnError(t *testing.T) {
	matches, err := locator.New().Locate(filepath.Join(t.TempDir(), "absent"), "FileCoverage", "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGlobLocator_SkipsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "JCR", "FileCoverage-archive"), 0755))

	matches, err := locator.New().Locate(filepath.Join(root, "JCR"), "FileCoverage", "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestPattern(t *testing.T) {
	assert.Equal(t, filepath.Join("JCR", "*LineCoverage*"), locator.Pattern("JCR", "LineCoverage", ""))
	assert.Equal(t, filepath.Join("JCR", "*ActionCoverage*.txt"), locator.Pattern("JCR", "ActionCoverage", "txt"))
}
