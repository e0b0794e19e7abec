// Package viewport computes cursor/scroll geometry for the results
// grid: which rows and columns are visible, where the cursor sits
// inside that window, and how navigation intents move both, per
// spec §4.7.
package viewport

import "github.com/halprin/qtab/internal/view"

// Intent is a navigation request, decoupled from the key that produced
// it so internal/action can issue the same Intent regardless of key
// bindings.
type Intent int

const (
	Up Intent = iota
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End
	FirstColumn
	LastColumn
	TopOfViewport
	MiddleOfViewport
	BottomOfViewport
)

// Manager tracks the cursor position and the visible window over a
// DataView's rows/columns. It owns no data itself; RowCount/ColumnCount
// are read from the DataView on every call so the manager stays valid
// across filter/sort/resize changes without explicit invalidation.
type Manager struct {
	View *view.DataView

	CursorRow int
	CursorCol int // index into DisplayColumns(), not a source column index

	RowOffset int // first visible display-row index

	ViewportHeight int // rows of grid body visible at once
	ViewportWidth  int // terminal columns available for the grid body

	colWidths      map[int]int // source column index -> cached render width
	colWidthSample int         // rows sampled to produce colWidths
}

func NewManager(v *view.DataView) *Manager {
	return &Manager{View: v, ViewportHeight: 1, colWidths: make(map[int]int)}
}

func (m *Manager) Resize(width, height int) {
	m.ViewportWidth = width
	m.ViewportHeight = height
	m.clampCursor()
}

// Move applies a navigation intent, updating CursorRow/CursorCol and
// RowOffset so the cursor stays inside the viewport (or at its edge).
func (m *Manager) Move(intent Intent) {
	rows := m.View.RowCount()
	cols := m.View.DisplayColumnCount()
	if rows == 0 || cols == 0 {
		return
	}

	switch intent {
	case Up:
		if m.CursorRow > 0 {
			m.CursorRow--
		}
	case Down:
		if m.CursorRow < rows-1 {
			m.CursorRow++
		}
	case Left:
		if m.CursorCol > 0 {
			m.CursorCol--
		}
	case Right:
		if m.CursorCol < cols-1 {
			m.CursorCol++
		}
	case PageUp:
		m.CursorRow -= m.pageSize()
	case PageDown:
		m.CursorRow += m.pageSize()
	case Home:
		m.CursorRow = 0
	case End:
		m.CursorRow = rows - 1
	case FirstColumn:
		m.CursorCol = 0
	case LastColumn:
		m.CursorCol = cols - 1
	case TopOfViewport:
		m.CursorRow = m.RowOffset
	case MiddleOfViewport:
		m.CursorRow = m.RowOffset + m.pageSize()/2
	case BottomOfViewport:
		m.CursorRow = m.RowOffset + m.visibleRows() - 1
	}

	m.clampCursor()
	m.scrollToCursor()
}

// JumpToRow moves the cursor directly to a display-row index (e.g.
// from Jump mode's numeric entry or a search/filter result), clamping
// to the valid range.
func (m *Manager) JumpToRow(row int) {
	m.CursorRow = row
	m.clampCursor()
	m.scrollToCursor()
}

func (m *Manager) pageSize() int {
	if m.ViewportHeight <= 0 {
		return 1
	}
	return m.ViewportHeight
}

func (m *Manager) visibleRows() int {
	n := m.View.RowCount() - m.RowOffset
	if m.ViewportHeight < n {
		return m.ViewportHeight
	}
	if n < 0 {
		return 0
	}
	return n
}

func (m *Manager) clampCursor() {
	rows := m.View.RowCount()
	cols := m.View.DisplayColumnCount()
	if m.CursorRow < 0 {
		m.CursorRow = 0
	}
	if rows > 0 && m.CursorRow >= rows {
		m.CursorRow = rows - 1
	}
	if rows == 0 {
		m.CursorRow = 0
	}
	if m.CursorCol < 0 {
		m.CursorCol = 0
	}
	if cols > 0 && m.CursorCol >= cols {
		m.CursorCol = cols - 1
	}
	if cols == 0 {
		m.CursorCol = 0
	}
	if m.RowOffset > m.CursorRow {
		m.RowOffset = m.CursorRow
	}
}

// scrollToCursor advances RowOffset so the cursor row stays within the
// vertical viewport, matching a standard pager's minimal-scroll rule.
func (m *Manager) scrollToCursor() {
	if m.ViewportHeight <= 0 {
		return
	}
	if m.CursorRow < m.RowOffset {
		m.RowOffset = m.CursorRow
	}
	if m.CursorRow >= m.RowOffset+m.ViewportHeight {
		m.RowOffset = m.CursorRow - m.ViewportHeight + 1
	}
	if m.RowOffset < 0 {
		m.RowOffset = 0
	}
}

// RenderSlice returns the display-row range [start, end) that should
// be drawn this frame.
func (m *Manager) RenderSlice() (start, end int) {
	rows := m.View.RowCount()
	start = m.RowOffset
	if start > rows {
		start = rows
	}
	end = start + m.ViewportHeight
	if end > rows {
		end = rows
	}
	return start, end
}
