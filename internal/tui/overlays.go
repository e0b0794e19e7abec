package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/halprin/qtab/internal/buffer"
	"github.com/halprin/qtab/internal/history"
	"github.com/halprin/qtab/internal/logging"
)

func renderHelpOverlay(width, height int) string {
	_ = height
	body := RenderHelp(width-4,
		"↑/k", "up", "↓/j", "down", "←/h", "left", "→/l", "right",
		"pgup/pgdn", "page", "g/G", "first/last row", "0/$", "first/last column",
		":", "query", "/", "search", "f/F", "filter/fuzzy", "c", "column search",
		"n/N", "next/prev match", "s/S", "sort asc/desc",
		"x/X", "hide/unhide column", "p/P", "pin/unpin column", "</>", "move column",
		"yy/yr/yc", "yank cell/row/col", "v", "paste", "u", "undo",
		"e/E", "export csv/json", "[/]", "prev/next buffer", "ctrl+w", "close buffer",
		"?", "help", "ctrl+d", "debug log", "ctrl+p", "pretty query", "ctrl+r", "history",
		"ctrl+g", "jump to row", "q", "quit",
	)
	return OverlayBorderStyle.Width(width - 4).Render("Keybindings\n\n" + body + "\n\nesc/q/enter to close")
}

func renderDebugOverlay(logs *logging.RingHandler, width, height int) string {
	if logs == nil {
		return OverlayBorderStyle.Width(width - 4).Render("debug log unavailable")
	}
	records := logs.Snapshot()
	maxLines := height - 6
	if maxLines < 1 {
		maxLines = 1
	}
	if len(records) > maxLines {
		records = records[len(records)-maxLines:]
	}
	var b strings.Builder
	b.WriteString("Debug log\n\n")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%s %-5s %s\n", r.Time.Format("15:04:05"), r.Level, r.Message))
	}
	b.WriteString("\nesc/q/enter to close")
	return OverlayBorderStyle.Width(width - 4).Render(b.String())
}

var topLevelClause = regexp.MustCompile(`(?i)\s+(from|where|order by|limit|offset)\s+`)

// prettyPrintQuery inserts a newline before each top-level clause
// keyword, giving the one-line query text a readable multi-line form.
func prettyPrintQuery(sql string) string {
	return topLevelClause.ReplaceAllStringFunc(sql, func(m string) string {
		return "\n" + strings.TrimSpace(m) + " "
	})
}

// renderPrettyQueryOverlay shows the raw query text beside a
// reformatted version, with the difference highlighted via go-diff —
// useful for spotting exactly which whitespace/keyword placement the
// pretty-printer changed.
func renderPrettyQueryOverlay(buf *buffer.Buffer, width, height int) string {
	_ = height
	raw := buf.QueryText
	pretty := prettyPrintQuery(raw)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(raw, pretty, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	b.WriteString("Pretty query\n\n")
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(DiffAddStyle.Render(d.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(DiffDelStyle.Render(d.Text))
		default:
			b.WriteString(d.Text)
		}
	}
	b.WriteString("\n\nesc/q/enter to close")
	return OverlayBorderStyle.Width(width - 4).Render(b.String())
}

func renderHistoryOverlay(store *history.Store, width, height int) string {
	if store == nil {
		return OverlayBorderStyle.Width(width - 4).Render("History\n\n(no history store attached)\n\nesc/q/enter to close")
	}
	maxLines := height - 6
	if maxLines < 1 {
		maxLines = 1
	}
	records, err := store.Recent(maxLines)
	if err != nil {
		return OverlayBorderStyle.Width(width - 4).Render(fmt.Sprintf("History\n\nerror reading history: %v\n\nesc/q/enter to close", err))
	}

	var b strings.Builder
	b.WriteString("History\n\n")
	for _, r := range records {
		status := "ok"
		if r.Err != "" {
			status = "error: " + r.Err
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s  (%d rows, %s)\n", r.RanAt.Format("15:04:05"), r.SourcePath, r.QueryText, r.RowCount, status))
	}
	if len(records) == 0 {
		b.WriteString("(no queries recorded yet)\n")
	}
	b.WriteString("\nesc/q/enter to close")
	return OverlayBorderStyle.Width(width - 4).Render(b.String())
}
