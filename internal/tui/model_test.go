package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halprin/qtab/internal/action"
	"github.com/halprin/qtab/internal/buffer"
	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testTable() *table.DataTable {
	cols := []table.Column{
		{Name: "id", DeclaredType: value.ColInt},
		{Name: "category", DeclaredType: value.ColStr},
	}
	tbl := table.New("trades", cols)
	tbl.AppendRow(table.Row{value.Int(1), value.Str("food")})
	tbl.AppendRow(table.Row{value.Int(2), value.Str("rent")})
	return tbl
}

func testModel() Model {
	mgr := buffer.NewManager()
	mgr.Add(buffer.New(0, "trades", "trades.csv", testTable()))
	m := New(mgr, nil, nil, nil, nil)
	m.width, m.height = 60, 20
	return m
}

func TestResolveResultsAction(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want action.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, action.ActMoveUp},
		{tea.KeyMsg{Type: tea.KeyDown}, action.ActMoveDown},
		{runeKey('s'), action.ActSortColumnAsc},
		{runeKey('S'), action.ActSortColumnDesc},
		{runeKey('x'), action.ActHideColumn},
		{runeKey('e'), action.ActExportCSV},
		{runeKey('E'), action.ActExportJSON},
		{runeKey(':'), action.ActEnterCommand},
		{runeKey('z'), action.ActNone},
	}
	for _, tt := range cases {
		if got := resolveResultsAction(tt.msg); got != tt.want {
			t.Errorf("resolveResultsAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestPendingYankSequence(t *testing.T) {
	m := testModel()
	buf := m.Buffers.Current()
	vp := m.vpFor(buf)
	vp.CursorRow, vp.CursorCol = 0, 1

	next, _ := m.handleResultsKey(buf, vp, runeKey('y'))
	m = next.(Model)
	if !m.pendingYank {
		t.Fatalf("expected pendingYank after a bare 'y'")
	}
	if buf.Yank().Paste() != "" {
		t.Fatalf("yank should not fire until the second key")
	}

	next, _ = m.handleResultsKey(buf, vp, runeKey('y'))
	m = next.(Model)
	if m.pendingYank {
		t.Fatalf("pendingYank should clear after the second key")
	}
	if got := buf.Yank().Paste(); got != "food" {
		t.Fatalf("Paste() after yy = %q, want %q", got, "food")
	}
}

func TestPendingYankRow(t *testing.T) {
	m := testModel()
	buf := m.Buffers.Current()
	vp := m.vpFor(buf)
	vp.CursorRow = 1

	next, _ := m.handleResultsKey(buf, vp, runeKey('y'))
	m = next.(Model)
	next, _ = m.handleResultsKey(buf, vp, runeKey('r'))
	_ = next.(Model)

	if got := buf.Yank().Paste(); got != "2\trent" {
		t.Fatalf("Paste() after yr = %q, want %q", got, "2\trent")
	}
}

func TestHandleJumpKey(t *testing.T) {
	m := testModel()
	buf := m.Buffers.Current()
	vp := m.vpFor(buf)

	next, _ := m.handleJumpKey(buf, vp, runeKey('2'))
	m = next.(Model)
	next, _ = m.handleJumpKey(buf, vp, tea.KeyMsg{Type: tea.KeyEnter})
	_ = next.(Model)

	if vp.CursorRow != 1 {
		t.Fatalf("CursorRow after jumping to row 2 = %d, want 1", vp.CursorRow)
	}
}
