package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/halprin/qtab/internal/buffer"
	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
	"github.com/halprin/qtab/internal/viewport"
)

// renderGrid draws the header row plus the currently visible rows of
// buf.View, honoring vp's pinned-aware column render order and row
// slice, per spec §4.7.
func renderGrid(buf *buffer.Buffer, vp *viewport.Manager) string {
	vp.SampleColumnWidths(100)
	order := vp.ColumnRenderOrder()
	if len(order) == 0 {
		return MutedText("no columns to display")
	}
	cols := buf.View.DisplayColumns()
	nPinned := len(buf.View.PinnedColumns)

	var b strings.Builder
	b.WriteString(renderHeaderRow(buf, vp, order, cols, nPinned))
	b.WriteByte('\n')

	start, end := vp.RenderSlice()
	for displayRow := start; displayRow < end; displayRow++ {
		row, ok := buf.View.GetRow(displayRow)
		if !ok {
			continue
		}
		b.WriteString(renderDataRow(vp, row, order, cols, nPinned, displayRow == vp.CursorRow, vp.CursorCol))
		if displayRow != end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderHeaderRow(buf *buffer.Buffer, vp *viewport.Manager, order, cols []int, nPinned int) string {
	cells := make([]string, len(order))
	for i, dispIdx := range order {
		srcCol := cols[dispIdx]
		name := buf.View.Source.Columns[srcCol].Name
		width := vp.ColumnWidth(srcCol)
		text := padCell(name, width) + " "
		style := HeaderStyle
		if dispIdx < nPinned {
			style = PinnedHeaderStyle
		}
		cells[i] = style.Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderDataRow(vp *viewport.Manager, row table.Row, order, cols []int, nPinned int, selected bool, cursorCol int) string {
	cells := make([]string, len(order))
	for i, dispIdx := range order {
		text := ""
		isNull := false
		if dispIdx < len(row) {
			text = row[dispIdx].DisplayString()
			isNull = row[dispIdx].IsNull()
		}
		if isNull {
			text = "∅"
		}
		width := vp.ColumnWidth(cols[dispIdx])
		text = padCell(text, width) + " "

		style := CellStyle
		switch {
		case selected && dispIdx == cursorCol:
			style = SelectedCellStyle
		case selected:
			style = SelectedRowStyle
		case isNull:
			style = NullCellStyle
		}
		cells[i] = style.Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func padCell(s string, width int) string {
	n := value.Length(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// MutedText renders a status-line hint in a muted tone.
func MutedText(s string) string {
	return lipgloss.NewStyle().Foreground(mutedColor).Render(s)
}
