// Package buffer holds per-document editor state — one Buffer per
// opened file/query result — and the BufferManager that tracks the
// open set, MRU history, and undo stack, per spec §3.5/§3.6.
package buffer

import (
	"github.com/halprin/qtab/internal/mode"
	"github.com/halprin/qtab/internal/table"
	"github.com/halprin/qtab/internal/view"
)

// QuerySource records whether the last successful query ran against
// the freshly loaded file or a cached in-memory table, a detail the
// status line surfaces (supplemented feature, not in the distilled
// spec).
type QuerySource int

const (
	SourceNone QuerySource = iota
	SourceFile
	SourceCache
)

func (s QuerySource) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceCache:
		return "cache"
	}
	return ""
}

// SelectionMode distinguishes what a yank/delete operates on.
type SelectionMode int

const (
	SelectCell SelectionMode = iota
	SelectRow
	SelectColumn
)

// Buffer is one open document: its source table, the current query
// text and cursor, the live view produced by the last successful
// query, and all per-document UI state (mode, selection, search,
// filters, sort, undo).
type Buffer struct {
	ID         int
	Name       string
	SourcePath string

	Source *table.DataTable
	View   *view.DataView

	QueryText   string
	QueryCursor int
	EditMode    bool // true while the query bar has focus

	Mode *mode.Coordinator

	SelectedRow   int
	CurrentColumn int
	ScrollOffset  int
	SelectionMode SelectionMode

	SearchPattern string
	SearchCursor  int

	FilterText        string
	FilterCaseSens    bool
	FuzzyFilterText   string
	FuzzyFilterActive bool

	ColumnSearchPattern string

	SortColumn int
	SortAsc    bool

	StatusMessage    string
	LastQuerySource  QuerySource

	undo *UndoStack
	yank *YankManager
}

const defaultUndoDepth = 50

// New wraps src in a fresh Buffer with a full, unfiltered view whose
// LastQuerySource is SourceFile until a query is run.
func New(id int, name, sourcePath string, src *table.DataTable) *Buffer {
	b := &Buffer{
		ID:         id,
		Name:       name,
		SourcePath: sourcePath,
		Source:     src,
		View:       view.New(src),
		Mode:       mode.NewCoordinator(),
		undo:       NewUndoStack(defaultUndoDepth),
		yank:       NewYankManager(),
	}
	b.LastQuerySource = SourceFile
	return b
}

// Undo/Yank expose the buffer's stacks to callers (internal/action)
// without letting them reach into buffer-private fields.
func (b *Buffer) Undo() *UndoStack   { return b.undo }
func (b *Buffer) Yank() *YankManager { return b.yank }

// ClearSearch/ClearFilter/ClearFuzzyFilter/ClearColumnSearch implement
// mode.Cleanup: internal/mode calls these when leaving the
// corresponding AppMode, per spec §4.8.
func (b *Buffer) ClearSearch() {
	b.SearchPattern = ""
	b.SearchCursor = 0
}

func (b *Buffer) ClearFilter() {
	b.FilterText = ""
	b.View.ClearFilter()
}

func (b *Buffer) ClearFuzzyFilter() {
	b.FuzzyFilterText = ""
	b.FuzzyFilterActive = false
	b.View.ClearFilter()
}

func (b *Buffer) ClearColumnSearch() {
	b.ColumnSearchPattern = ""
	b.View.ColumnSrch = nil
}

// Snapshot captures the subset of Buffer state the undo stack needs to
// restore: the view (sort/filter/column layout) and cursor/selection
// position. It intentionally excludes QueryText/Mode — undo restores
// grid state, not in-progress edits, per spec §4.6's undo scope.
type Snapshot struct {
	View          *view.DataView
	SelectedRow   int
	CurrentColumn int
	ScrollOffset  int
}

func (b *Buffer) snapshot() Snapshot {
	return Snapshot{
		View:          b.View.Clone(),
		SelectedRow:   b.SelectedRow,
		CurrentColumn: b.CurrentColumn,
		ScrollOffset:  b.ScrollOffset,
	}
}

// PushUndo records the current state before a mutating operation.
func (b *Buffer) PushUndo() {
	b.undo.Push(b.snapshot())
}

// PopUndo restores the most recent snapshot, if any, returning false
// when the stack was empty.
func (b *Buffer) PopUndo() bool {
	snap, ok := b.undo.Pop()
	if !ok {
		return false
	}
	b.View = snap.View
	b.SelectedRow = snap.SelectedRow
	b.CurrentColumn = snap.CurrentColumn
	b.ScrollOffset = snap.ScrollOffset
	return true
}
