// Package aggregate reduces parsed report records into summary statistics.
//
// Every function here is pure. A value that does not parse as a number
// becomes NaN and propagates through the arithmetic, so a single bad cell
// degrades only the aggregates that read its field.
package aggregate

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/covstat/covstat/internal/domain"
)

// ParseNumber parses a field value. Undefined or non-numeric values yield NaN.
func ParseNumber(raw string, defined bool) float64 {
	if !defined {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Value returns the numeric value of a record field.
func Value(r domain.Record, field string) float64 {
	raw, ok := r.Get(field)
	return ParseNumber(raw, ok)
}

// Sum adds a field over all records.
func Sum(records []domain.Record, field string) float64 {
	var s float64
	for _, r := range records {
		s += Value(r, field)
	}
	return s
}

// Mean is Sum divided by the record count. An empty list yields NaN.
func Mean(records []domain.Record, field string) float64 {
	return Sum(records, field) / float64(len(records))
}

// Ratio divides the sum of field a by the sum of field b.
func Ratio(records []domain.Record, a, b string) float64 {
	return Sum(records, a) / Sum(records, b)
}

// MeanRatio divides the mean of field a by the mean of field b.
func MeanRatio(records []domain.Record, a, b string) float64 {
	return Mean(records, a) / Mean(records, b)
}

// WeightedSum adds the per-record product of fields a and b.
func WeightedSum(records []domain.Record, a, b string) float64 {
	var s float64
	for _, r := range records {
		s += Value(r, a) * Value(r, b)
	}
	return s
}

// WeightedMean is WeightedSum divided by the record count.
func WeightedMean(records []domain.Record, a, b string) float64 {
	return WeightedSum(records, a, b) / float64(len(records))
}

// CalibrationRatio returns expected/computed when an expected value is
// supplied, otherwise 1.
func CalibrationRatio(expected float64, ok bool, computed float64) float64 {
	if !ok {
		return 1
	}
	return expected / computed
}

// Group is the set of values collected under one categorical key.
type Group struct {
	Count int
	Sum   float64
}

// Mean of the group's values. An empty group yields NaN.
func (g Group) Mean() float64 {
	return g.Sum / float64(g.Count)
}

// Groups maps a categorical value to its collected values.
type Groups map[string]Group

// Keys returns the group keys sorted lexically.
func (g Groups) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Mean returns the mean of a group, NaN when the key has no values.
func (g Groups) Mean(key string) float64 {
	return g[key].Mean()
}

// GroupBy partitions records by the value of groupField and accumulates
// valueField for every record accepted by keep. A nil keep accepts all.
func GroupBy(records []domain.Record, groupField, valueField string, keep func(domain.Record) bool) Groups {
	groups := make(Groups)
	for _, r := range records {
		if keep != nil && !keep(r) {
			continue
		}
		key, _ := r.Get(groupField)
		g := groups[key]
		g.Count++
		g.Sum += Value(r, valueField)
		groups[key] = g
	}
	return groups
}

// ColumnSum adds column col over headerless rows, counting only rows long
// enough to have that column.
func ColumnSum(rows [][]string, col int) (float64, int) {
	var (
		sum   float64
		count int
	)
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		sum += ParseNumber(row[col], true)
		count++
	}
	return sum, count
}
