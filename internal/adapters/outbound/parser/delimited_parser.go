package parser

import (
	"fmt"
	"os"

	"github.com/covstat/covstat/internal/domain"
)

// DelimitedParser implements domain.ReportParser for tab- or comma-delimited
// text reports.
type DelimitedParser struct{}

func New() *DelimitedParser {
	return &DelimitedParser{}
}

// ParseTable reads a report whose first row is a header.
func (p *DelimitedParser) ParseTable(path, delim string) (*domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return domain.ParseTable(string(data), delim), nil
}

// ParseRows reads a headerless report.
func (p *DelimitedParser) ParseRows(path, delim string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return domain.ParseRows(string(data), delim), nil
}
