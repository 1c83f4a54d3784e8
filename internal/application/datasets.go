package application

import (
	"path/filepath"

	"github.com/covstat/covstat/internal/domain"
)

// Datasets resolves every input the selected passes would read, without
// parsing anything.
func (p *Pipeline) Datasets(root string, cfg domain.Config) []domain.Dataset {
	var out []domain.Dataset
	add := func(cat domain.Category, name, dir, token, ext string) {
		paths, err := p.locator.Locate(dir, token, ext)
		if err != nil {
			p.log.Warn("locating dataset failed", "category", cat, "tool", name, "err", err)
		}
		out = append(out, domain.Dataset{Category: cat, Name: name, Pattern: dir, Paths: paths})
	}

	for _, cat := range []domain.Category{domain.CategoryFileCoverage, domain.CategoryLineCoverage} {
		if cfg.IsSkipped(cat) {
			continue
		}
		for _, tool := range cfg.Tools {
			add(cat, tool, filepath.Join(root, tool), string(cat), "")
		}
	}
	if !cfg.IsSkipped(domain.CategoryActionCoverage) {
		source := cfg.ActionSourceTool()
		add(domain.CategoryActionCoverage, source, filepath.Join(root, source), string(domain.CategoryActionCoverage), cfg.ActionCoverage.Extension)
	}
	if !cfg.IsSkipped(domain.CategoryOchiai) {
		for _, subject := range cfg.Subjects {
			add(domain.CategoryOchiai, subject, filepath.Join(root, cfg.Ochiai.Dir, subject+"_*"), cfg.Ochiai.Token, cfg.Ochiai.Extension)
		}
	}
	return out
}
