package buffer

import (
	"testing"

	"github.com/halprin/qtab/internal/mode"
	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/value"
)

func buildSource() *table.DataTable {
	cols := []table.Column{
		{Name: "id", DeclaredType: value.ColInt},
		{Name: "status", DeclaredType: value.ColStr},
	}
	tbl := table.New("t", cols)
	tbl.AppendRow(table.Row{value.Int(1), value.Str("ok")})
	tbl.AppendRow(table.Row{value.Int(2), value.Str("ok")})
	return tbl
}

// S7: switching buffers preserves each buffer's state exactly.
func TestBufferSwitchPreservesState(t *testing.T) {
	mgr := NewManager()
	a := New(0, "a", "a.csv", buildSource())
	a.SelectedRow = 1
	a.SortColumn = 1
	mgr.Add(a)

	b := New(0, "b", "b.csv", buildSource())
	b.SelectedRow = 0
	mgr.Add(b)

	if mgr.Current() != b {
		t.Fatalf("expected b to be current after Add")
	}
	if !mgr.Switch(a.ID) {
		t.Fatalf("Switch(a.ID) failed")
	}
	if mgr.Current().SelectedRow != 1 || mgr.Current().SortColumn != 1 {
		t.Fatalf("buffer a's state was not preserved across the switch")
	}

	mgr.Switch(b.ID)
	if mgr.Current().SelectedRow != 0 {
		t.Fatalf("buffer b's state was not preserved across the switch")
	}
}

func TestHistoryDeduplicatesAndCaps(t *testing.T) {
	mgr := NewManager()
	ids := make([]int, 0, 12)
	for i := 0; i < 12; i++ {
		b := New(0, "b", "", buildSource())
		mgr.Add(b)
		ids = append(ids, b.ID)
	}
	mgr.Switch(ids[0]) // re-visit an old buffer
	hist := mgr.History()
	if len(hist) > historyLimit {
		t.Fatalf("history length %d exceeds cap %d", len(hist), historyLimit)
	}
	if hist[0] != ids[0] {
		t.Fatalf("most recently switched-to buffer should be first in history, got %v", hist)
	}
	seen := map[int]bool{}
	for _, id := range hist {
		if seen[id] {
			t.Fatalf("history contains duplicate id %d: %v", id, hist)
		}
		seen[id] = true
	}
}

func TestUndoRestoresSortAndSelection(t *testing.T) {
	b := New(0, "t", "", buildSource())
	b.SelectedRow = 0
	b.SortColumn = -1
	b.PushUndo()

	b.SelectedRow = 1
	b.SortColumn = 1
	b.View.ApplySort(0, false)

	if !b.PopUndo() {
		t.Fatalf("PopUndo should succeed")
	}
	if b.SelectedRow != 0 {
		t.Fatalf("SelectedRow after undo = %d, want 0", b.SelectedRow)
	}
	if b.View.Sort != nil {
		t.Fatalf("View.Sort after undo = %+v, want nil", b.View.Sort)
	}
}

func TestUndoStackBounded(t *testing.T) {
	u := NewUndoStack(3)
	for i := 0; i < 5; i++ {
		u.Push(Snapshot{SelectedRow: i})
	}
	if u.Len() != 3 {
		t.Fatalf("Len = %d, want 3", u.Len())
	}
	snap, ok := u.Pop()
	if !ok || snap.SelectedRow != 4 {
		t.Fatalf("expected most recent push (4) on top, got %+v", snap)
	}
}

// S6: leaving Filter mode clears only the filter, not an active fuzzy filter.
func TestModeCleanupClearsOnlyOwnState(t *testing.T) {
	b := New(0, "t", "", buildSource())
	b.FuzzyFilterText = "keep-me"
	b.FuzzyFilterActive = true
	b.FilterText = "drop-me"

	b.Mode.Enter(mode.Filter, b)
	b.Mode.Enter(mode.FuzzyFilter, b) // leaving Filter clears FilterText only

	if b.FilterText != "" {
		t.Fatalf("FilterText should be cleared after leaving Filter mode")
	}
	if b.FuzzyFilterText != "keep-me" {
		t.Fatalf("FuzzyFilterText should survive entering FuzzyFilter mode")
	}
}

func TestYankCellThenRowKeepsHistory(t *testing.T) {
	y := NewYankManager()
	y.Yank(YankCell, []string{"42"})
	y.Yank(YankRow, []string{"1", "ok"})
	if y.Paste() != "1\tok" {
		t.Fatalf("Paste() = %q, want row yank joined by tabs", y.Paste())
	}
	if len(y.History()) != 1 {
		t.Fatalf("expected one prior yank in history, got %d", len(y.History()))
	}
}
