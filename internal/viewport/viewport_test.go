package viewport

import (
	"testing"

	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
	"github.com/halprin/qtab/internal/view"
)

func buildView(rows int) *view.DataView {
	cols := []table.Column{
		{Name: "id", DeclaredType: value.ColInt},
		{Name: "name", DeclaredType: value.ColStr},
		{Name: "amount", DeclaredType: value.ColFloat},
		{Name: "category", DeclaredType: value.ColStr},
	}
	tbl := table.New("t", cols)
	for i := 0; i < rows; i++ {
		tbl.AppendRow(table.Row{value.Int(int64(i)), value.Str("row"), value.Float(float64(i)), value.Str("cat")})
	}
	return view.New(tbl)
}

func TestMoveClampsAtEdges(t *testing.T) {
	v := buildView(5)
	m := NewManager(v)
	m.Resize(80, 3)

	for i := 0; i < 10; i++ {
		m.Move(Up)
	}
	if m.CursorRow != 0 {
		t.Fatalf("CursorRow = %d, want 0 after over-moving up", m.CursorRow)
	}
	for i := 0; i < 10; i++ {
		m.Move(Down)
	}
	if m.CursorRow != 4 {
		t.Fatalf("CursorRow = %d, want 4 after over-moving down", m.CursorRow)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	v := buildView(20)
	m := NewManager(v)
	m.Resize(80, 5)
	for i := 0; i < 10; i++ {
		m.Move(Down)
	}
	if m.CursorRow != 10 {
		t.Fatalf("CursorRow = %d, want 10", m.CursorRow)
	}
	if m.RowOffset == 0 {
		t.Fatalf("expected RowOffset to have scrolled, stayed at 0")
	}
	start, end := m.RenderSlice()
	if m.CursorRow < start || m.CursorRow >= end {
		t.Fatalf("cursor row %d not within render slice [%d,%d)", m.CursorRow, start, end)
	}
}

func TestPinnedColumnsAlwaysInRenderOrder(t *testing.T) {
	v := buildView(3)
	v.PinColumn(0) // pin id
	m := NewManager(v)
	m.Resize(6, 3) // narrow viewport
	m.SampleColumnWidths(10)

	order := m.ColumnRenderOrder()
	if len(order) == 0 || order[0] != 0 {
		t.Fatalf("expected pinned column first in render order, got %v", order)
	}
}

func TestColumnWidthSamplingPicksLongestCell(t *testing.T) {
	v := buildView(1)
	tbl := v.Source
	tbl.Rows[0][1] = value.Str("a-very-long-name")
	m := NewManager(v)
	m.SampleColumnWidths(10)
	if m.ColumnWidth(1) != len("a-very-long-name") {
		t.Fatalf("ColumnWidth(1) = %d, want %d", m.ColumnWidth(1), len("a-very-long-name"))
	}
}
