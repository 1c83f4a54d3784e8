package locator

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobLocator implements domain.DatasetLocator with shell-style globbing.
type GlobLocator struct{}

func New() *GlobLocator {
	return &GlobLocator{}
}

// Locate returns the files matching <dir>/*<token>*[.<ext>], sorted.
// dir may itself contain wildcards. No match yields an empty slice.
func (l *GlobLocator) Locate(dir, token, ext string) ([]string, error) {
	pattern := Pattern(dir, token, ext)
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Pattern builds the glob used by Locate.
func Pattern(dir, token, ext string) string {
	name := "*" + token + "*"
	if ext != "" {
		name += "." + ext
	}
	return filepath.Join(dir, name)
}
