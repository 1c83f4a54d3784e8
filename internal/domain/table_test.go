package domain_test

import (
	"testing"

	"github.com/covstat/covstat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fields = []domain.Field{
	{Name: "BugId", Column: "BugId"},
	{Name: "FixedFile", Column: "#FixedFile"},
	{Name: "Covered", Column: "#Fixed-File-that-Covered-by-Induced-Files"},
}

func TestParseTable_HeaderAndRows(t *testing.T) {
	table := domain.ParseTable("BugId\t#FixedFile\r\nb1\t2\r\nb2\t1\r\n", "\t")

	assert.Equal(t, []string{"BugId", "#FixedFile"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"b1", "2"}, table.Rows[0])
	assert.Equal(t, []string{"b2", "1"}, table.Rows[1])
}

func TestParseTable_DefaultDelimiterIsComma(t *testing.T) {
	table := domain.ParseTable("a,b\n1,2", "")
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
}

func TestParseTable_DropsBlankRows(t *testing.T) {
	table := domain.ParseTable("a\tb\n1\t2\n\n\t\n", "\t")
	assert.Len(t, table.Rows, 1)
}

func TestParseTable_HeaderOnly(t *testing.T) {
	table := domain.ParseTable("a\tb", "\t")
	assert.Empty(t, table.Rows)
	assert.Empty(t, table.Records(domain.Field{Name: "a", Column: "a"}))
}

func TestRecords_LookupByHeaderName(t *testing.T) {
	ordered := domain.ParseTable(
		"BugId\t#FixedFile\t#Fixed-File-that-Covered-by-Induced-Files\nb1\t2\t1", "\t")
	permuted := domain.ParseTable(
		"#Fixed-File-that-Covered-by-Induced-Files\tBugId\t#FixedFile\n1\tb1\t2", "\t")

	assert.Equal(t, ordered.Records(fields...), permuted.Records(fields...))

	rec := permuted.Records(fields...)[0]
	v, ok := rec.Get("Covered")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestRecords_MissingColumnIsUndefined(t *testing.T) {
	table := domain.ParseTable("BugId\t#FixedFile\nb1\t2", "\t")
	rec := table.Records(fields...)[0]

	_, ok := rec.Get("Covered")
	assert.False(t, ok, "absent header column should leave the field undefined")
}

func TestRecords_ShortRowIsUndefined(t *testing.T) {
	table := domain.ParseTable("BugId\t#FixedFile\nb1", "\t")
	rec := table.Records(fields...)[0]

	_, ok := rec.Get("FixedFile")
	assert.False(t, ok)
	v, ok := rec.Get("BugId")
	assert.True(t, ok)
	assert.Equal(t, "b1", v)
}

func TestParseRows_Headerless(t *testing.T) {
	rows := domain.ParseRows("x\t0.1\t0.2\r\nx\t0.3\t0.4\n", "\t")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"x", "0.1", "0.2"}, rows[0])
	assert.Equal(t, []string{""}, rows[2])
}

func TestCleanFields(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, domain.CleanFields([]string{"a\r", "\nb\r\n", "\r"}))
}
