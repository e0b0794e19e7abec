package table

import (
	"fmt"
	"strings"

	"github.com/halprin/qtab/internal/value"
)

// Row is a fixed-length sequence of values, one per column.
type Row []value.Value

// DataTable is an ordered set of columns plus an append-only ordered
// set of rows. Once loaded it is treated as immutable: every DataView
// referencing it holds a *DataTable and never mutates it (spec §3.3).
type DataTable struct {
	Name    string
	Columns []Column
	Rows    []Row

	byLowerName map[string]int
}

// New constructs an empty table with the given columns; rows are
// appended afterward via AppendRow.
func New(name string, cols []Column) *DataTable {
	t := &DataTable{Name: name, Columns: cols}
	t.rebuildIndex()
	return t
}

func (t *DataTable) rebuildIndex() {
	t.byLowerName = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.byLowerName[strings.ToLower(c.Name)] = i
	}
}

// ColumnCount returns the number of columns.
func (t *DataTable) ColumnCount() int { return len(t.Columns) }

// RowCount returns the number of rows.
func (t *DataTable) RowCount() int { return len(t.Rows) }

// ColumnIndex resolves a column name to its source index, matching
// case-insensitively per spec §3.2 ("name is unique within a table
// ... case-insensitive lookup"). ok is false if no column matches.
func (t *DataTable) ColumnIndex(name string) (int, bool) {
	i, ok := t.byLowerName[strings.ToLower(name)]
	return i, ok
}

// AppendRow appends a row, which must have exactly ColumnCount values
// (spec §3.3 invariant); it panics otherwise since this is an internal
// loader invariant, not a user-facing error condition.
func (t *DataTable) AppendRow(r Row) {
	if len(r) != len(t.Columns) {
		panic(fmt.Sprintf("table: row has %d values, want %d", len(r), len(t.Columns)))
	}
	t.Rows = append(t.Rows, r)
}

// SanitizeTableName replaces any character outside [A-Za-z0-9_] with
// '_' and prefixes with '_' if the result would start with a digit,
// per spec §4.2.
func SanitizeTableName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if out[0] >= '0' && out[0] <= '9' {
		return "_" + out
	}
	return out
}

// ComputeStats walks each column once, populating NullCount and
// UniqueCount, per spec §4.2 ("After load the loader walks each column
// once to populate null_count and (optionally) unique_count").
func (t *DataTable) ComputeStats() {
	for ci := range t.Columns {
		nullCount := 0
		seen := make(map[string]struct{})
		for _, row := range t.Rows {
			v := row[ci]
			if v.IsNull() {
				nullCount++
				continue
			}
			seen[v.DisplayString()] = struct{}{}
		}
		unique := len(seen)
		t.Columns[ci].NullCount = nullCount
		t.Columns[ci].Nullable = nullCount > 0
		t.Columns[ci].UniqueCount = &unique
	}
}
