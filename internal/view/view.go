// Package view implements DataView: a cheaply-cloneable, immutable-
// source projection over a table.DataTable that records visibility,
// ordering, pinning, sort, and filter state without ever mutating the
// table it references (spec §3.4).
package view

import (
	"sort"
	"strings"

	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
)

// SortOrder is the direction of a DataView's sort.
type SortOrder int

const (
	Asc SortOrder = iota
	Desc
)

// SortSpec names a single ORDER BY key.
type SortSpec struct {
	Column int // source column index
	Order  SortOrder
}

// TextFilter is a substring filter applied across every source column.
type TextFilter struct {
	Pattern       string
	CaseSensitive bool
}

// ColumnSearch tracks an in-progress header search (spec §4.6
// search_columns / next_column_match / prev_column_match).
type ColumnSearch struct {
	Pattern string
	Matches []int // display indices of matching visible columns
	Cursor  int
}

// MaxPinned is the default cap on pinned columns (spec §3.4).
const MaxPinned = 4

// DataView projects a table.DataTable through visibility, pin, sort,
// filter, limit/offset state, per spec §3.4.
type DataView struct {
	Source *table.DataTable

	VisibleRows    []int // source row indices
	VisibleColumns []int // source column indices, excluding pinned duplicates in zone math
	PinnedColumns  []int // source column indices, prefix of display

	Sort *SortSpec

	TextFilter  *TextFilter
	FuzzyFilter *TextFilter // same shape; apostrophe-prefix exact match handled in this package
	ColumnSrch  *ColumnSearch

	Limit  *int
	Offset int

	MaxPinned int // 0 means use the package default
}

// New returns a DataView over every row and column of src, in source
// order, matching spec §4.5 step 2 ("DataView::new(table)").
func New(src *table.DataTable) *DataView {
	v := &DataView{Source: src, MaxPinned: MaxPinned}
	v.VisibleRows = make([]int, src.RowCount())
	for i := range v.VisibleRows {
		v.VisibleRows[i] = i
	}
	v.VisibleColumns = make([]int, src.ColumnCount())
	for i := range v.VisibleColumns {
		v.VisibleColumns[i] = i
	}
	return v
}

func (v *DataView) maxPinned() int {
	if v.MaxPinned <= 0 {
		return MaxPinned
	}
	return v.MaxPinned
}

// Clone returns a deep-enough copy that mutating the clone never
// affects v: cheap, O(visible_rows + visible_columns) per spec §3.4.
func (v *DataView) Clone() *DataView {
	c := *v
	c.VisibleRows = append([]int(nil), v.VisibleRows...)
	c.VisibleColumns = append([]int(nil), v.VisibleColumns...)
	c.PinnedColumns = append([]int(nil), v.PinnedColumns...)
	if v.Sort != nil {
		s := *v.Sort
		c.Sort = &s
	}
	if v.TextFilter != nil {
		f := *v.TextFilter
		c.TextFilter = &f
	}
	if v.FuzzyFilter != nil {
		f := *v.FuzzyFilter
		c.FuzzyFilter = &f
	}
	if v.ColumnSrch != nil {
		cs := *v.ColumnSrch
		cs.Matches = append([]int(nil), v.ColumnSrch.Matches...)
		c.ColumnSrch = &cs
	}
	if v.Limit != nil {
		l := *v.Limit
		c.Limit = &l
	}
	return &c
}

// RowCount returns the number of rows visible after limit/offset.
func (v *DataView) RowCount() int {
	n := len(v.VisibleRows) - v.Offset
	if n < 0 {
		n = 0
	}
	if v.Limit != nil && *v.Limit < n {
		n = *v.Limit
	}
	return n
}

// DisplayColumns returns source indices in display order: pinned
// prefix followed by the remaining visible columns, per spec §3.4
// ("Display order is pinned_columns ++ (visible_columns \ pinned_columns)").
func (v *DataView) DisplayColumns() []int {
	pinnedSet := make(map[int]bool, len(v.PinnedColumns))
	for _, c := range v.PinnedColumns {
		pinnedSet[c] = true
	}
	out := make([]int, 0, len(v.PinnedColumns)+len(v.VisibleColumns))
	out = append(out, v.PinnedColumns...)
	for _, c := range v.VisibleColumns {
		if !pinnedSet[c] {
			out = append(out, c)
		}
	}
	return out
}

// DisplayColumnCount returns len(DisplayColumns()).
func (v *DataView) DisplayColumnCount() int { return len(v.DisplayColumns()) }

// HiddenColumns returns the source indices that are neither visible
// nor pinned (spec §3.4's derived hidden_columns set).
func (v *DataView) HiddenColumns() []int {
	shown := make(map[int]bool, len(v.VisibleColumns)+len(v.PinnedColumns))
	for _, c := range v.VisibleColumns {
		shown[c] = true
	}
	for _, c := range v.PinnedColumns {
		shown[c] = true
	}
	var hidden []int
	for i := 0; i < v.Source.ColumnCount(); i++ {
		if !shown[i] {
			hidden = append(hidden, i)
		}
	}
	return hidden
}

// GetRow returns the row at display index idx (after limit/offset),
// containing only the display columns in display order, per spec §4.6.
func (v *DataView) GetRow(idx int) (table.Row, bool) {
	if idx < 0 || idx >= v.RowCount() {
		return nil, false
	}
	srcRowIdx := v.VisibleRows[v.Offset+idx]
	srcRow := v.Source.Rows[srcRowIdx]
	cols := v.DisplayColumns()
	out := make(table.Row, len(cols))
	for i, ci := range cols {
		out[i] = srcRow[ci]
	}
	return out, true
}

// SourceRowIndex maps a display row index to its source row index,
// honoring offset but not limit (callers check bounds via RowCount).
func (v *DataView) SourceRowIndex(idx int) (int, bool) {
	pos := v.Offset + idx
	if pos < 0 || pos >= len(v.VisibleRows) {
		return 0, false
	}
	return v.VisibleRows[pos], true
}

// ApplySort stably sorts VisibleRows by the given source column, per
// spec §4.6.
func (v *DataView) ApplySort(sourceCol int, asc bool) {
	order := Asc
	if !asc {
		order = Desc
	}
	v.Sort = &SortSpec{Column: sourceCol, Order: order}
	v.resort()
}

// ApplyMultiSort stably sorts by multiple keys in priority order, per
// spec §4.5 step 5 ("additional keys ... applied lexicographically in
// a stable multi-key sort").
func (v *DataView) ApplyMultiSort(specs []SortSpec) {
	if len(specs) == 0 {
		return
	}
	v.Sort = &specs[0]
	sort.SliceStable(v.VisibleRows, func(i, j int) bool {
		ri, rj := v.VisibleRows[i], v.VisibleRows[j]
		for _, s := range specs {
			a := v.Source.Rows[ri][s.Column]
			b := v.Source.Rows[rj][s.Column]
			c := value.Compare(a, b)
			if s.Order == Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func (v *DataView) resort() {
	if v.Sort == nil {
		return
	}
	s := *v.Sort
	sort.SliceStable(v.VisibleRows, func(i, j int) bool {
		a := v.Source.Rows[v.VisibleRows[i]][s.Column]
		b := v.Source.Rows[v.VisibleRows[j]][s.Column]
		c := value.Compare(a, b)
		if s.Order == Desc {
			c = -c
		}
		return c < 0
	})
}

// ApplyTextFilter retains rows where any source column's value
// contains pattern as a substring, per spec §4.6. It replaces any
// prior text or fuzzy filter.
func (v *DataView) ApplyTextFilter(pattern string, caseSensitive bool) {
	v.TextFilter = &TextFilter{Pattern: pattern, CaseSensitive: caseSensitive}
	v.FuzzyFilter = nil
	v.recomputeRows()
}

// ApplyFuzzyFilter implements spec §4.6: a leading apostrophe forces
// an exact substring match on the remainder; otherwise an ordered
// subsequence match scores each row and any positive score passes.
func (v *DataView) ApplyFuzzyFilter(pattern string, caseSensitive bool) {
	v.FuzzyFilter = &TextFilter{Pattern: pattern, CaseSensitive: caseSensitive}
	v.TextFilter = nil
	v.recomputeRows()
}

// ClearFilter resets VisibleRows to the full source range, per spec
// §9's Open Question resolution (the simpler "reset to full range"
// reading; a WHERE-driven narrowing must be re-applied by re-running
// the query engine, not recovered here).
func (v *DataView) ClearFilter() {
	v.TextFilter = nil
	v.FuzzyFilter = nil
	v.VisibleRows = make([]int, v.Source.RowCount())
	for i := range v.VisibleRows {
		v.VisibleRows[i] = i
	}
	v.resort()
}

// SetRowsFromPredicate replaces VisibleRows with every source row
// index for which keep returns true, in source order unless the view
// has a sort, which is then re-applied. Used by
// QueryEngine to apply a WHERE clause (spec §4.5 step 3).
func (v *DataView) SetRowsFromPredicate(keep func(sourceRowIdx int) bool) {
	rows := make([]int, 0, v.Source.RowCount())
	for i := 0; i < v.Source.RowCount(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	v.VisibleRows = rows
	v.resort()
}

func (v *DataView) recomputeRows() {
	base := make([]int, v.Source.RowCount())
	for i := range base {
		base[i] = i
	}

	var kept []int
	for _, srcIdx := range base {
		if v.rowPasses(srcIdx) {
			kept = append(kept, srcIdx)
		}
	}
	v.VisibleRows = kept
	v.resort()
}

func (v *DataView) rowPasses(srcIdx int) bool {
	row := v.Source.Rows[srcIdx]
	if v.TextFilter != nil {
		return rowContainsSubstring(row, v.TextFilter.Pattern, v.TextFilter.CaseSensitive)
	}
	if v.FuzzyFilter != nil {
		pattern := v.FuzzyFilter.Pattern
		if strings.HasPrefix(pattern, "'") {
			return rowContainsSubstring(row, pattern[1:], v.FuzzyFilter.CaseSensitive)
		}
		return rowFuzzyMatches(row, pattern, v.FuzzyFilter.CaseSensitive)
	}
	return true
}

func rowContainsSubstring(row table.Row, pattern string, caseSensitive bool) bool {
	if pattern == "" {
		return true
	}
	needle := pattern
	if !caseSensitive {
		needle = strings.ToLower(needle)
	}
	for _, v := range row {
		cell := v.DisplayString()
		if !caseSensitive {
			cell = strings.ToLower(cell)
		}
		if strings.Contains(cell, needle) {
			return true
		}
	}
	return false
}

func rowFuzzyMatches(row table.Row, pattern string, caseSensitive bool) bool {
	if pattern == "" {
		return true
	}
	needle := pattern
	if !caseSensitive {
		needle = strings.ToLower(needle)
	}
	for _, v := range row {
		cell := v.DisplayString()
		if !caseSensitive {
			cell = strings.ToLower(cell)
		}
		if fuzzyScore(cell, needle) > 0 {
			return true
		}
	}
	return false
}

// fuzzyScore returns a positive score if every rune of pattern occurs
// in s in order (not necessarily contiguously), else 0.
func fuzzyScore(s, pattern string) int {
	if pattern == "" {
		return 0
	}
	score := 0
	pi := 0
	pr := []rune(pattern)
	for _, r := range s {
		if pi < len(pr) && r == pr[pi] {
			pi++
			score++
		}
	}
	if pi == len(pr) {
		return score
	}
	return 0
}

// SearchColumns populates ColumnSrch.Matches with display indices of
// visible columns whose name contains pattern, case-insensitively, per
// spec §4.6.
func (v *DataView) SearchColumns(pattern string) {
	cols := v.DisplayColumns()
	needle := strings.ToLower(pattern)
	var matches []int
	for di, ci := range cols {
		if strings.Contains(strings.ToLower(v.Source.Columns[ci].Name), needle) {
			matches = append(matches, di)
		}
	}
	v.ColumnSrch = &ColumnSearch{Pattern: pattern, Matches: matches, Cursor: 0}
}

// NextColumnMatch/PrevColumnMatch cycle the column-search cursor with
// wraparound, returning the matched display index, or -1 if there are
// no matches.
func (v *DataView) NextColumnMatch() int {
	if v.ColumnSrch == nil || len(v.ColumnSrch.Matches) == 0 {
		return -1
	}
	v.ColumnSrch.Cursor = (v.ColumnSrch.Cursor + 1) % len(v.ColumnSrch.Matches)
	return v.ColumnSrch.Matches[v.ColumnSrch.Cursor]
}

func (v *DataView) PrevColumnMatch() int {
	if v.ColumnSrch == nil || len(v.ColumnSrch.Matches) == 0 {
		return -1
	}
	n := len(v.ColumnSrch.Matches)
	v.ColumnSrch.Cursor = (v.ColumnSrch.Cursor - 1 + n) % n
	return v.ColumnSrch.Matches[v.ColumnSrch.Cursor]
}
