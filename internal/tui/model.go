// Package tui implements the bubbletea grid UI: a results screen with
// overlay modes for query editing, search, filters, help, debug, a
// pretty-printed query diff, and history, per spec §4.6-§4.9.
package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halprin/qtab/internal/action"
	"github.com/halprin/qtab/internal/buffer"
	"github.com/halprin/qtab/internal/config"
	"github.com/halprin/qtab/internal/history"
	"github.com/halprin/qtab/internal/logging"
	"github.com/halprin/qtab/internal/mode"
	"github.com/halprin/qtab/internal/viewport"
)

const (
	headerLines = 2 // title bar + column header
	footerLines = 2 // status bar + command/input bar
)

// Model is the bubbletea model wiring buffer/action/mode/viewport
// together into the results grid and its overlays.
type Model struct {
	Buffers    *buffer.Manager
	Dispatcher *action.Dispatcher
	Config     *config.Config
	Listener   *history.Listener
	History    *history.Store
	Logs       *logging.RingHandler

	viewports map[int]*viewport.Manager

	width, height int
	quitting      bool
	pendingYank   bool // true after a bare "y", awaiting y/r/c to pick cell/row/column

	searchMatches map[int][]int // unused reservation; match nav lives in action.Dispatcher
	lastQueryErr  string
}

// New builds a Model with one buffer per loaded table.
func New(buffers *buffer.Manager, cfg *config.Config, listener *history.Listener, store *history.Store, logs *logging.RingHandler) Model {
	return Model{
		Buffers:    buffers,
		Dispatcher: action.NewDispatcher(),
		Config:     cfg,
		Listener:   listener,
		History:    store,
		Logs:       logs,
		viewports:  make(map[int]*viewport.Manager),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// vpFor returns (creating if needed) the viewport.Manager for buf,
// keeping its View pointer in sync since buf.View is replaced wholesale
// by queries and undo rather than mutated in place.
func (m Model) vpFor(buf *buffer.Buffer) *viewport.Manager {
	vp, ok := m.viewports[buf.ID]
	if !ok {
		vp = viewport.NewManager(buf.View)
		vp.Resize(m.width, bodyHeight(m.height))
		m.viewports[buf.ID] = vp
	}
	vp.View = buf.View
	return vp
}

func bodyHeight(totalHeight int) int {
	h := totalHeight - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, vp := range m.viewports {
			vp.Resize(m.width, bodyHeight(m.height))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	buf := m.Buffers.Current()
	if buf == nil {
		if msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	vp := m.vpFor(buf)

	switch buf.Mode.Current() {
	case mode.Command:
		return m.handleCommandKey(buf, vp, msg)
	case mode.Search:
		return m.handleLineInput(buf, vp, msg, &buf.SearchPattern, nil)
	case mode.Filter:
		return m.handleLineInput(buf, vp, msg, &buf.FilterText, func() {
			buf.View.ApplyTextFilter(buf.FilterText, buf.FilterCaseSens)
		})
	case mode.FuzzyFilter:
		return m.handleLineInput(buf, vp, msg, &buf.FuzzyFilterText, func() {
			buf.FuzzyFilterActive = true
			buf.View.ApplyFuzzyFilter(buf.FuzzyFilterText, buf.FilterCaseSens)
		})
	case mode.ColumnSearch:
		return m.handleLineInput(buf, vp, msg, &buf.ColumnSearchPattern, func() {
			buf.View.SearchColumns(buf.ColumnSearchPattern)
		})
	case mode.Jump:
		return m.handleJumpKey(buf, vp, msg)
	case mode.Help, mode.Debug, mode.PrettyQuery, mode.History:
		return m.handleOverlayKey(buf, vp, msg)
	default:
		return m.handleResultsKey(buf, vp, msg)
	}
}

// handleResultsKey maps a keypress in Results mode onto an Action via
// ResultsKeys, the way the teacher's handleKeyPress switches on
// msg.String() per screen.
func (m Model) handleResultsKey(buf *buffer.Buffer, vp *viewport.Manager, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingYank {
		m.pendingYank = false
		switch msg.String() {
		case "y":
			return m.dispatchAction(action.ActYankCell, buf, vp)
		case "r":
			return m.dispatchAction(action.ActYankRow, buf, vp)
		case "c":
			return m.dispatchAction(action.ActYankColumn, buf, vp)
		}
		return m, nil
	}
	if msg.String() == "y" {
		m.pendingYank = true
		return m, nil
	}

	act := resolveResultsAction(msg)
	if act == action.ActNone {
		return m, nil
	}

	switch act {
	case action.ActNextBuffer:
		m.switchBufferBy(1)
		return m, nil
	case action.ActPrevBuffer:
		m.switchBufferBy(-1)
		return m, nil
	case action.ActCloseBuffer:
		m.Buffers.Close(buf.ID)
		delete(m.viewports, buf.ID)
		return m, nil
	case action.ActQuit:
		m.quitting = true
		return m, tea.Quit
	}

	return m.dispatchAction(act, buf, vp)
}

// dispatchAction runs act through the Dispatcher and folds its outcome
// back into buf/m, shared by the direct results-key path and the
// pending-yank sequence.
func (m Model) dispatchAction(act action.Action, buf *buffer.Buffer, vp *viewport.Manager) (tea.Model, tea.Cmd) {
	out := m.Dispatcher.Dispatch(act, buf, vp)
	if act == action.ActRunQuery {
		rowCount := buf.View.RowCount()
		m.Listener.OnQueryExecuted(buf.SourcePath, buf.QueryText, rowCount, out.Err)
	}
	buf.StatusMessage = out.StatusMessage
	if out.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) switchBufferBy(delta int) {
	list := m.Buffers.List()
	if len(list) == 0 {
		return
	}
	cur := m.Buffers.Current()
	idx := 0
	for i, b := range list {
		if cur != nil && b.ID == cur.ID {
			idx = i
			break
		}
	}
	next := (idx+delta+len(list))%len(list)
	m.Buffers.Switch(list[next].ID)
}

func resolveResultsAction(msg tea.KeyMsg) action.Action {
	k := ResultsKeys
	switch {
	case msg.String() == "q":
		return action.ActQuit
	case matches(msg, k.Up):
		return action.ActMoveUp
	case matches(msg, k.Down):
		return action.ActMoveDown
	case matches(msg, k.Left):
		return action.ActMoveLeft
	case matches(msg, k.Right):
		return action.ActMoveRight
	case matches(msg, k.PageUp):
		return action.ActPageUp
	case matches(msg, k.PageDown):
		return action.ActPageDown
	case matches(msg, k.Home):
		return action.ActHome
	case matches(msg, k.End):
		return action.ActEnd
	case matches(msg, k.FirstColumn):
		return action.ActFirstColumn
	case matches(msg, k.LastColumn):
		return action.ActLastColumn
	case matches(msg, k.Query):
		return action.ActEnterCommand
	case matches(msg, k.Search):
		return action.ActEnterSearch
	case matches(msg, k.Filter):
		return action.ActEnterFilter
	case matches(msg, k.Fuzzy):
		return action.ActEnterFuzzyFilter
	case matches(msg, k.ColumnSearch):
		return action.ActEnterColumnSearch
	case matches(msg, k.NextMatch):
		return action.ActNextSearchMatch
	case matches(msg, k.PrevMatch):
		return action.ActPrevSearchMatch
	case matches(msg, k.Help):
		return action.ActEnterHelp
	case matches(msg, k.Debug):
		return action.ActEnterDebug
	case matches(msg, k.PrettyQuery):
		return action.ActEnterPrettyQuery
	case matches(msg, k.History):
		return action.ActEnterHistory
	case matches(msg, k.Jump):
		return action.ActEnterJump
	case matches(msg, k.SortAsc):
		return action.ActSortColumnAsc
	case matches(msg, k.SortDesc):
		return action.ActSortColumnDesc
	case matches(msg, k.HideColumn):
		return action.ActHideColumn
	case matches(msg, k.UnhideColumns):
		return action.ActUnhideAllColumns
	case matches(msg, k.PinColumn):
		return action.ActPinColumn
	case matches(msg, k.UnpinColumn):
		return action.ActUnpinColumn
	case matches(msg, k.MoveColLeft):
		return action.ActMoveColumnLeft
	case matches(msg, k.MoveColRight):
		return action.ActMoveColumnRight
	case matches(msg, k.Paste):
		return action.ActPaste
	case matches(msg, k.Undo):
		return action.ActUndo
	case matches(msg, k.NextBuffer):
		return action.ActNextBuffer
	case matches(msg, k.PrevBuffer):
		return action.ActPrevBuffer
	case matches(msg, k.CloseBuffer):
		return action.ActCloseBuffer
	case matches(msg, k.ExportCSV):
		return action.ActExportCSV
	case matches(msg, k.ExportJSON):
		return action.ActExportJSON
	}
	return action.ActNone
}

func matches(msg tea.KeyMsg, b interface{ Keys() []string }) bool {
	for _, want := range b.Keys() {
		if msg.String() == want {
			return true
		}
	}
	return false
}

// handleCommandKey edits buf.QueryText while in Command mode (the
// query bar), running the query on Enter.
func (m Model) handleCommandKey(buf *buffer.Buffer, vp *viewport.Manager, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		buf.Mode.Exit(buf)
		return m, nil
	case tea.KeyEnter:
		out := m.Dispatcher.Dispatch(action.ActRunQuery, buf, vp)
		m.Listener.OnQueryExecuted(buf.SourcePath, buf.QueryText, buf.View.RowCount(), out.Err)
		buf.StatusMessage = out.StatusMessage
		buf.Mode.Exit(buf)
		return m, nil
	case tea.KeyBackspace:
		if buf.QueryCursor > 0 {
			buf.QueryText = buf.QueryText[:buf.QueryCursor-1] + buf.QueryText[buf.QueryCursor:]
			buf.QueryCursor--
		}
		return m, nil
	case tea.KeyLeft:
		if buf.QueryCursor > 0 {
			buf.QueryCursor--
		}
		return m, nil
	case tea.KeyRight:
		if buf.QueryCursor < len(buf.QueryText) {
			buf.QueryCursor++
		}
		return m, nil
	case tea.KeyCtrlV:
		out := m.Dispatcher.Dispatch(action.ActPaste, buf, vp)
		buf.StatusMessage = out.StatusMessage
		return m, nil
	case tea.KeyRunes:
		s := string(msg.Runes)
		buf.QueryText = buf.QueryText[:buf.QueryCursor] + s + buf.QueryText[buf.QueryCursor:]
		buf.QueryCursor += len(s)
		return m, nil
	}
	return m, nil
}

// handleLineInput implements the shared edit-buffer behavior for
// Search/Filter/FuzzyFilter/ColumnSearch: keystrokes mutate *field,
// onChange (if non-nil) re-applies live, and Enter/Esc both leave the
// mode — mode.Coordinator's leave-cleanup then clears the field and,
// for Filter/FuzzyFilter, the view's applied filter (spec §4.8).
func (m Model) handleLineInput(buf *buffer.Buffer, vp *viewport.Manager, msg tea.KeyMsg, field *string, onChange func()) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		buf.Mode.Exit(buf)
		return m, nil
	case tea.KeyBackspace:
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
	case tea.KeyRunes:
		*field += string(msg.Runes)
	default:
		return m, nil
	}
	if onChange != nil {
		onChange()
	}
	return m, nil
}

func (m Model) handleJumpKey(buf *buffer.Buffer, vp *viewport.Manager, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		buf.Mode.Exit(buf)
		return m, nil
	case tea.KeyEnter:
		if n, err := strconv.Atoi(buf.ColumnSearchPattern); err == nil {
			vp.JumpToRow(n - 1)
		}
		buf.ColumnSearchPattern = ""
		buf.Mode.Exit(buf)
		return m, nil
	case tea.KeyBackspace:
		if len(buf.ColumnSearchPattern) > 0 {
			buf.ColumnSearchPattern = buf.ColumnSearchPattern[:len(buf.ColumnSearchPattern)-1]
		}
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				buf.ColumnSearchPattern += string(r)
			}
		}
		return m, nil
	}
	return m, nil
}

// handleOverlayKey closes the overlay on Esc/q/Enter, returning to
// whatever mode was active before it was opened (handled by
// mode.Coordinator.Exit's return-stack).
func (m Model) handleOverlayKey(buf *buffer.Buffer, vp *viewport.Manager, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		buf.Mode.Exit(buf)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	buf := m.Buffers.Current()
	if buf == nil {
		return "qtab: no buffers open\n"
	}
	vp := m.vpFor(buf)

	switch buf.Mode.Current() {
	case mode.Help:
		return renderHelpOverlay(m.width, m.height)
	case mode.Debug:
		return renderDebugOverlay(m.Logs, m.width, m.height)
	case mode.PrettyQuery:
		return renderPrettyQueryOverlay(buf, m.width, m.height)
	case mode.History:
		return renderHistoryOverlay(m.History, m.width, m.height)
	}

	title := fmt.Sprintf(" %s  [%s]  rows:%d cols:%d ", buf.Name, buf.LastQuerySource, buf.View.RowCount(), buf.View.DisplayColumnCount())
	grid := renderGrid(buf, vp)
	status := renderStatusLine(buf)
	inputBar := renderInputBar(buf)

	return HeaderStyle.Render(title) + "\n" + grid + "\n" + status + "\n" + inputBar
}

func renderStatusLine(buf *buffer.Buffer) string {
	msg := buf.StatusMessage
	if msg == "" {
		msg = fmt.Sprintf("mode:%s", buf.Mode.Current())
	}
	return StatusBarStyle.Render(msg)
}

func renderInputBar(buf *buffer.Buffer) string {
	switch buf.Mode.Current() {
	case mode.Command:
		return CommandBarStyle.Render(": " + buf.QueryText)
	case mode.Search:
		return CommandBarStyle.Render("/ " + buf.SearchPattern)
	case mode.Filter:
		return CommandBarStyle.Render("filter> " + buf.FilterText)
	case mode.FuzzyFilter:
		return CommandBarStyle.Render("fuzzy> " + buf.FuzzyFilterText)
	case mode.ColumnSearch:
		return CommandBarStyle.Render("col> " + buf.ColumnSearchPattern)
	case mode.Jump:
		return CommandBarStyle.Render("jump to row> " + buf.ColumnSearchPattern)
	}
	return CommandBarStyle.Render("")
}
