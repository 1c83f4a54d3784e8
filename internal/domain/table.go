package domain

import (
	"strings"
)

// Table is a delimited report split into a header and data rows.
// Every cell has already had its row-terminator characters removed.
type Table struct {
	Header []string
	Rows   [][]string
}

// Field maps a canonical field name to the header column that carries it.
type Field struct {
	Name   string
	Column string
}

// Record is one data row keyed by canonical field name. A field whose
// column is absent from the header, or whose row is too short, is simply
// not present in the map.
type Record map[string]string

// Get returns the raw value of a field and whether it was defined.
func (r Record) Get(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

// ParseTable splits contents into rows on line breaks and each row on delim.
// Row 0 is the header. Rows whose cells are all empty are dropped, which
// covers the blank line produced by a trailing newline.
func ParseTable(contents, delim string) *Table {
	if delim == "" {
		delim = ","
	}
	lines := strings.Split(contents, "\n")
	t := &Table{Header: CleanFields(strings.Split(lines[0], delim))}
	for _, line := range lines[1:] {
		row := CleanFields(strings.Split(line, delim))
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ParseRows splits headerless contents into cleaned rows. Blank rows are
// kept as a single empty cell so positional column checks skip them.
func ParseRows(contents, delim string) [][]string {
	if delim == "" {
		delim = ","
	}
	var rows [][]string
	for _, line := range strings.Split(contents, "\n") {
		rows = append(rows, CleanFields(strings.Split(line, delim)))
	}
	return rows
}

var terminators = strings.NewReplacer("\r", "", "\n", "")

// CleanFields strips \r and \n from every cell.
func CleanFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = terminators.Replace(f)
	}
	return out
}

// Index returns the position of a header column, or -1.
func (t *Table) Index(column string) int {
	for i, h := range t.Header {
		if h == column {
			return i
		}
	}
	return -1
}

// Records builds one Record per data row, looking each field up by header
// name so that column order in the file does not matter.
func (t *Table) Records(fields ...Field) []Record {
	idx := make([]int, len(fields))
	for i, f := range fields {
		idx[i] = t.Index(f.Column)
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(Record, len(fields))
		for i, f := range fields {
			if idx[i] >= 0 && idx[i] < len(row) {
				rec[f.Name] = row[idx[i]]
			}
		}
		records = append(records, rec)
	}
	return records
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
