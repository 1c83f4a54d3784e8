package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/covstat/covstat/internal/domain"
)

const lockName = ".covstat.lock"

// FileWriter implements domain.ArtifactWriter. Every write holds an
// exclusive lock on the output directory so concurrent runs cannot
// interleave artifacts.
type FileWriter struct {
	dir string
}

func New(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

// Dir returns the output directory.
func (w *FileWriter) Dir() string { return w.dir }

// WriteLines joins lines with "\n" and writes them to name.
func (w *FileWriter) WriteLines(name string, lines []string) (string, error) {
	return w.write(name, []byte(strings.Join(lines, "\n")))
}

// WriteJSONArray writes each item as compact JSON, joined by "\n," and
// wrapped in brackets.
func (w *FileWriter) WriteJSONArray(name string, items []any) (string, error) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return "", fmt.Errorf("marshaling %s: %w", name, err)
		}
		parts = append(parts, string(data))
	}
	return w.write(name, []byte("["+strings.Join(parts, "\n,")+"]"))
}

func (w *FileWriter) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	lock := flock.New(filepath.Join(w.dir, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("locking output dir: %w", err)
	}
	if !ok {
		return "", domain.ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
