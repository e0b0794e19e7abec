package viewport

import "github.com/halprin/qtab/internal/value"

const resamplePercent = 50 // resample widths once row count has drifted by this % since the last sample

// SampleColumnWidths measures the render width of every currently
// visible source column by scanning up to sampleSize rows (plus the
// header), and caches the result. It re-samples automatically once the
// view's row count has drifted by resamplePercent% or more since the
// last sample, so a filter that reshapes the row set doesn't leave
// stale widths pinned from a previous, unrelated result set. A sort
// keeps the row count and so does not trigger a re-sample.
func (m *Manager) SampleColumnWidths(sampleSize int) {
	rows := m.View.RowCount()
	if m.colWidthSample > 0 {
		delta := abs(rows - m.colWidthSample)
		if delta*100 < resamplePercent*m.colWidthSample {
			return
		}
	}

	cols := m.View.DisplayColumns()
	widths := make(map[int]int, len(cols))
	for _, srcCol := range cols {
		name := m.View.Source.Columns[srcCol].Name
		widths[srcCol] = len(name)
	}

	n := sampleSize
	if n > rows {
		n = rows
	}
	for i := 0; i < n; i++ {
		row, ok := m.View.GetRow(i)
		if !ok {
			break
		}
		for di, srcCol := range cols { // row is in display order
			w := value.Length(row[di].DisplayString())
			if w > widths[srcCol] {
				widths[srcCol] = w
			}
		}
	}

	m.colWidths = widths
	m.colWidthSample = rows
}

// ColumnWidth returns the cached render width for a source column
// index, or the column name's length if it has not been sampled yet.
func (m *Manager) ColumnWidth(srcCol int) int {
	if w, ok := m.colWidths[srcCol]; ok {
		return w
	}
	if srcCol >= 0 && srcCol < len(m.View.Source.Columns) {
		return len(m.View.Source.Columns[srcCol].Name)
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ColumnRenderOrder returns the concrete display-column indices to
// draw this frame: the pinned prefix (always shown in full), followed
// by as many unpinned columns as fit in the remaining width, scrolled
// so the cursor column is always among them, per spec §4.7.
func (m *Manager) ColumnRenderOrder() []int {
	cols := m.View.DisplayColumns()
	nPinned := len(m.View.PinnedColumns)
	if len(cols) == 0 {
		return nil
	}

	out := make([]int, 0, len(cols))
	pinnedWidth := 0
	for i := 0; i < nPinned && i < len(cols); i++ {
		out = append(out, i)
		pinnedWidth += m.ColumnWidth(cols[i]) + 1
	}

	budget := m.ViewportWidth - pinnedWidth
	if budget < 0 {
		budget = 0
	}
	if nPinned >= len(cols) {
		return out
	}

	cursor := m.CursorCol
	if cursor < nPinned {
		cursor = nPinned
	}
	if cursor >= len(cols) {
		cursor = len(cols) - 1
	}

	lo, hi := cursor, cursor
	used := m.ColumnWidth(cols[cursor]) + 1
	for used < budget {
		grew := false
		if lo > nPinned {
			w := m.ColumnWidth(cols[lo-1]) + 1
			if used+w <= budget {
				lo--
				used += w
				grew = true
			}
		}
		if hi+1 < len(cols) {
			w := m.ColumnWidth(cols[hi+1]) + 1
			if used+w <= budget {
				hi++
				used += w
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
