// Package action decouples key bindings from the operations they
// trigger: internal/tui's key maps emit an Action, and Dispatcher maps
// that Action onto the buffer/viewport/mode components it needs,
// per spec §4.9.
package action

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/halprin/qtab/internal/buffer"
	"github.com/halprin/qtab/internal/mode"
	"github.com/halprin/qtab/internal/query"
	"github.com/halprin/qtab/internal/viewport"
)

// Action is a named, key-independent user intent.
type Action int

const (
	ActNone Action = iota

	// Navigation
	ActMoveUp
	ActMoveDown
	ActMoveLeft
	ActMoveRight
	ActPageUp
	ActPageDown
	ActHome
	ActEnd
	ActFirstColumn
	ActLastColumn
	ActTopOfViewport
	ActMiddleOfViewport
	ActBottomOfViewport

	// Mode changes
	ActEnterCommand
	ActEnterSearch
	ActEnterFilter
	ActEnterFuzzyFilter
	ActEnterColumnSearch
	ActEnterHelp
	ActEnterDebug
	ActEnterPrettyQuery
	ActEnterHistory
	ActEnterJump
	ActExitMode

	// Query
	ActRunQuery
	ActClearFilterResult

	// Sort
	ActSortColumnAsc
	ActSortColumnDesc

	// Column
	ActHideColumn
	ActUnhideAllColumns
	ActPinColumn
	ActUnpinColumn
	ActMoveColumnLeft
	ActMoveColumnRight

	// Edit / Yank
	ActYankCell
	ActYankRow
	ActYankColumn
	ActPaste
	ActUndo

	// Buffer
	ActNextBuffer
	ActPrevBuffer
	ActCloseBuffer

	// Search/Filter navigation
	ActNextSearchMatch
	ActPrevSearchMatch
	ActNextColumnMatch
	ActPrevColumnMatch

	// Export
	ActExportCSV
	ActExportJSON

	ActQuit
)

// DispatchOutcome tells the caller (internal/tui's Update loop)
// whether to keep running and what changed.
type DispatchOutcome struct {
	Exit          bool
	StatusMessage string
	Err           error
}

// Dispatcher executes an Action against the current buffer and its
// viewport. It holds no state of its own.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// Dispatch applies act to buf/vp. Mode-family actions additionally
// route through buf.Mode so leave-cleanup rules run.
func (d *Dispatcher) Dispatch(act Action, buf *buffer.Buffer, vp *viewport.Manager) DispatchOutcome {
	switch act {
	case ActQuit:
		return DispatchOutcome{Exit: true}

	case ActMoveUp:
		vp.Move(viewport.Up)
	case ActMoveDown:
		vp.Move(viewport.Down)
	case ActMoveLeft:
		vp.Move(viewport.Left)
	case ActMoveRight:
		vp.Move(viewport.Right)
	case ActPageUp:
		vp.Move(viewport.PageUp)
	case ActPageDown:
		vp.Move(viewport.PageDown)
	case ActHome:
		vp.Move(viewport.Home)
	case ActEnd:
		vp.Move(viewport.End)
	case ActFirstColumn:
		vp.Move(viewport.FirstColumn)
	case ActLastColumn:
		vp.Move(viewport.LastColumn)
	case ActTopOfViewport:
		vp.Move(viewport.TopOfViewport)
	case ActMiddleOfViewport:
		vp.Move(viewport.MiddleOfViewport)
	case ActBottomOfViewport:
		vp.Move(viewport.BottomOfViewport)

	case ActEnterCommand:
		buf.Mode.Enter(mode.Command, buf)
		buf.EditMode = true
	case ActEnterSearch:
		buf.Mode.Enter(mode.Search, buf)
	case ActEnterFilter:
		buf.Mode.Enter(mode.Filter, buf)
	case ActEnterFuzzyFilter:
		buf.Mode.Enter(mode.FuzzyFilter, buf)
	case ActEnterColumnSearch:
		buf.Mode.Enter(mode.ColumnSearch, buf)
	case ActEnterHelp:
		buf.Mode.Enter(mode.Help, buf)
	case ActEnterDebug:
		buf.Mode.Enter(mode.Debug, buf)
	case ActEnterPrettyQuery:
		buf.Mode.Enter(mode.PrettyQuery, buf)
	case ActEnterHistory:
		buf.Mode.Enter(mode.History, buf)
	case ActEnterJump:
		buf.Mode.Enter(mode.Jump, buf)
	case ActExitMode:
		buf.Mode.Exit(buf)
		buf.EditMode = false

	case ActRunQuery:
		return d.runQuery(buf)

	case ActClearFilterResult:
		buf.View.ClearFilter()

	case ActSortColumnAsc, ActSortColumnDesc:
		// ApplySort takes a source column; the cursor is a display index.
		if cols := buf.View.DisplayColumns(); vp.CursorCol >= 0 && vp.CursorCol < len(cols) {
			buf.View.ApplySort(cols[vp.CursorCol], act == ActSortColumnAsc)
		}

	case ActHideColumn:
		buf.PushUndo()
		if !buf.View.HideColumn(vp.CursorCol) {
			return DispatchOutcome{StatusMessage: "cannot hide a pinned column"}
		}
	case ActUnhideAllColumns:
		buf.PushUndo()
		buf.View.UnhideAllColumns()
	case ActPinColumn:
		buf.PushUndo()
		if !buf.View.PinColumn(vp.CursorCol) {
			return DispatchOutcome{StatusMessage: "cannot pin: already pinned or at max pinned columns"}
		}
	case ActUnpinColumn:
		buf.PushUndo()
		buf.View.UnpinColumn(vp.CursorCol)
	case ActMoveColumnLeft:
		buf.View.MoveColumnLeft(vp.CursorCol)
	case ActMoveColumnRight:
		buf.View.MoveColumnRight(vp.CursorCol)

	case ActUndo:
		if !buf.PopUndo() {
			return DispatchOutcome{StatusMessage: "nothing to undo"}
		}

	case ActYankCell:
		return d.yankCell(buf, vp)
	case ActYankRow:
		return d.yankRow(buf, vp)
	case ActYankColumn:
		return d.yankColumn(buf, vp)

	case ActNextColumnMatch:
		buf.View.NextColumnMatch()
	case ActPrevColumnMatch:
		buf.View.PrevColumnMatch()

	case ActNextSearchMatch:
		return d.searchMove(buf, vp, true)
	case ActPrevSearchMatch:
		return d.searchMove(buf, vp, false)

	case ActPaste:
		return d.pasteIntoQuery(buf)

	case ActExportCSV:
		return d.export(buf, ".csv", buf.View.ExportCSV)
	case ActExportJSON:
		return d.export(buf, ".json", buf.View.ExportJSON)
	}

	return DispatchOutcome{}
}

// searchMove advances the cursor to the next (or previous) row
// containing buf.SearchPattern in any display column, wrapping around
// the current row set. It reports "no match" rather than moving the
// cursor when nothing matches.
func (d *Dispatcher) searchMove(buf *buffer.Buffer, vp *viewport.Manager, forward bool) DispatchOutcome {
	if buf.SearchPattern == "" {
		return DispatchOutcome{}
	}
	n := buf.View.RowCount()
	if n == 0 {
		return DispatchOutcome{}
	}
	needle := strings.ToLower(buf.SearchPattern)
	start := vp.CursorRow
	for step := 1; step <= n; step++ {
		var idx int
		if forward {
			idx = (start + step) % n
		} else {
			idx = ((start-step)%n + n) % n
		}
		row, ok := buf.View.GetRow(idx)
		if !ok {
			continue
		}
		for _, v := range row {
			if strings.Contains(strings.ToLower(v.DisplayString()), needle) {
				vp.JumpToRow(idx)
				return DispatchOutcome{}
			}
		}
	}
	return DispatchOutcome{StatusMessage: "no match"}
}

// pasteIntoQuery inserts the most recent yank at the query bar's
// cursor, letting a yanked cell value be reused as a literal.
func (d *Dispatcher) pasteIntoQuery(buf *buffer.Buffer) DispatchOutcome {
	text := buf.Yank().Paste()
	if text == "" {
		return DispatchOutcome{StatusMessage: "nothing to paste"}
	}
	pos := buf.QueryCursor
	if pos < 0 || pos > len(buf.QueryText) {
		pos = len(buf.QueryText)
	}
	buf.QueryText = buf.QueryText[:pos] + text + buf.QueryText[pos:]
	buf.QueryCursor = pos + len(text)
	return DispatchOutcome{}
}

// export writes the buffer's current view to "<name><ext>" in the
// working directory via writeFn, matching the original CLI's
// export_to_csv/export_to_json actions.
func (d *Dispatcher) export(buf *buffer.Buffer, ext string, writeFn func(w io.Writer) error) DispatchOutcome {
	path := buf.Name + ext
	f, err := os.Create(path) //nolint:gosec // export destination is the buffer's own table name
	if err != nil {
		return DispatchOutcome{Err: err, StatusMessage: fmt.Sprintf("export failed: %v", err)}
	}
	defer func() { _ = f.Close() }()
	if err := writeFn(f); err != nil {
		return DispatchOutcome{Err: err, StatusMessage: fmt.Sprintf("export failed: %v", err)}
	}
	return DispatchOutcome{StatusMessage: "exported to " + path}
}

func (d *Dispatcher) runQuery(buf *buffer.Buffer) DispatchOutcome {
	res, err := query.Execute(buf.Source, buf.QueryText, buf.FilterCaseSens)
	if err != nil {
		return DispatchOutcome{Err: err, StatusMessage: err.Error()}
	}
	buf.PushUndo()
	buf.View = res.View
	buf.LastQuerySource = buffer.SourceCache
	status := ""
	if len(res.SkippedRows) > 0 {
		status = "some rows were skipped due to evaluation errors"
	}
	return DispatchOutcome{StatusMessage: status}
}

func (d *Dispatcher) yankCell(buf *buffer.Buffer, vp *viewport.Manager) DispatchOutcome {
	row, ok := buf.View.GetRow(vp.CursorRow)
	if !ok {
		return DispatchOutcome{}
	}
	if vp.CursorCol < 0 || vp.CursorCol >= len(row) {
		return DispatchOutcome{}
	}
	v := row[vp.CursorCol]
	buf.Yank().Yank(buffer.YankCell, []string{v.DisplayString()})
	return DispatchOutcome{}
}

func (d *Dispatcher) yankRow(buf *buffer.Buffer, vp *viewport.Manager) DispatchOutcome {
	row, ok := buf.View.GetRow(vp.CursorRow)
	if !ok {
		return DispatchOutcome{}
	}
	vals := make([]string, len(row))
	for i, v := range row {
		vals[i] = v.DisplayString()
	}
	buf.Yank().Yank(buffer.YankRow, vals)
	return DispatchOutcome{}
}

func (d *Dispatcher) yankColumn(buf *buffer.Buffer, vp *viewport.Manager) DispatchOutcome {
	cols := buf.View.DisplayColumns()
	if vp.CursorCol < 0 || vp.CursorCol >= len(cols) {
		return DispatchOutcome{}
	}
	n := buf.View.RowCount()
	vals := make([]string, 0, n)
	for i := 0; i < n; i++ {
		row, ok := buf.View.GetRow(i)
		if !ok || vp.CursorCol >= len(row) {
			continue
		}
		vals = append(vals, row[vp.CursorCol].DisplayString())
	}
	buf.Yank().Yank(buffer.YankColumn, vals)
	return DispatchOutcome{}
}
