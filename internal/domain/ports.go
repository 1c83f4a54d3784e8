package domain

import "errors"

var (
	// ErrMissingDataset is returned when no file matches a locator pattern.
	ErrMissingDataset = errors.New("dataset not found")
	// ErrEmptyDataset is returned when a located file holds no data rows.
	ErrEmptyDataset = errors.New("dataset has no rows")
	// ErrLocked is returned when another run holds the output directory.
	ErrLocked = errors.New("output directory is locked by another run")
)

// DatasetLocator resolves a directory pattern and report token to files.
// Zero matches is not an error.
type DatasetLocator interface {
	Locate(dir, token, ext string) ([]string, error)
}

// ReportParser reads delimited report files.
type ReportParser interface {
	ParseTable(path, delim string) (*Table, error)
	ParseRows(path, delim string) ([][]string, error)
}

// NumberFormatter renders aggregates for delimited artifacts.
type NumberFormatter interface {
	Format(v float64) string
}

// ArtifactWriter persists serialized reports and returns the written path.
type ArtifactWriter interface {
	WriteLines(name string, lines []string) (string, error)
	WriteJSONArray(name string, items []any) (string, error)
}

// ConfigLoader loads the run configuration for a dataset root.
type ConfigLoader interface {
	Load(root string) (Config, error)
}

// GitInfo provides git metadata for a dataset root.
type GitInfo interface {
	CommitHash(path string) (string, error)
}

// RunHistory persists run entries next to the artifacts.
type RunHistory interface {
	Save(dir string, entry RunEntry) error
	Load(dir string) ([]RunEntry, error)
}
