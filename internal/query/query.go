// Package query orchestrates parse -> filter -> project -> sort ->
// limit/offset into a single Execute entry point, per spec §4.5.
package query

import (
	"fmt"

	"github.com/halprin/qtab/internal/query/eval"
	"github.com/halprin/qtab/internal/query/lang"
	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/view"
)

// Result wraps the produced DataView together with the row-level
// evaluation failures spec §4.4 says must not abort the whole query.
type Result struct {
	View        *view.DataView
	SkippedRows []*eval.EvalError
}

// Execute parses sql against src's schema, evaluates WHERE per-row
// (excluding rows that fail with an *eval.EvalError rather than
// aborting; any other evaluation error aborts the query), and applies
// projection, ORDER BY, and LIMIT/OFFSET on the resulting view.
// caseSensitive controls Contains/StartsWith/EndsWith matching in WHERE
// method predicates (spec §4.4: case-insensitive by default).
func Execute(src *table.DataTable, sql string, caseSensitive bool) (*Result, error) {
	sel, err := lang.Parse(sql)
	if err != nil {
		return nil, err
	}
	if !equalFoldTable(sel.From, src.Name) {
		return nil, fmt.Errorf("unknown table %q", sel.From)
	}

	v := view.New(src)
	res := &Result{View: v}

	if !sel.Star {
		if err := applyProjection(v, src, sel.Columns); err != nil {
			return nil, err
		}
	}

	if sel.Where != nil {
		e := eval.NewEvaluator(src)
		e.CaseSensitive = caseSensitive
		keep := make([]bool, src.RowCount())
		for i, row := range src.Rows {
			ok, err := e.Matches(row, sel.Where)
			if err != nil {
				if ee, isEval := err.(*eval.EvalError); isEval {
					ee.RowIndex = i
					res.SkippedRows = append(res.SkippedRows, ee)
					continue
				}
				return nil, err
			}
			keep[i] = ok
		}
		v.SetRowsFromPredicate(func(srcIdx int) bool { return keep[srcIdx] })
	}

	if len(sel.OrderBy) > 0 {
		specs := make([]view.SortSpec, 0, len(sel.OrderBy))
		for _, term := range sel.OrderBy {
			idx, ok := src.ColumnIndex(term.Column)
			if !ok {
				return nil, fmt.Errorf("unknown column %q in ORDER BY", term.Column)
			}
			order := view.Asc
			if term.Desc {
				order = view.Desc
			}
			specs = append(specs, view.SortSpec{Column: idx, Order: order})
		}
		v.ApplyMultiSort(specs)
	}

	if sel.Limit != nil {
		v.Limit = sel.Limit
	}
	if sel.Offset != nil {
		v.Offset = *sel.Offset
	}

	return res, nil
}

func applyProjection(v *view.DataView, src *table.DataTable, columns []string) error {
	cols := make([]int, 0, len(columns))
	for _, name := range columns {
		idx, ok := src.ColumnIndex(name)
		if !ok {
			return fmt.Errorf("unknown column %q", name)
		}
		cols = append(cols, idx)
	}
	v.VisibleColumns = cols
	v.PinnedColumns = nil
	return nil
}

func equalFoldTable(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
