package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halprin/qtab/internal/buffer"
	"github.com/halprin/qtab/internal/config"
	"github.com/halprin/qtab/internal/history"
	"github.com/halprin/qtab/internal/logging"
)

// Run starts the interactive TUI over an already-populated
// buffer.Manager, blocking until the user quits.
func Run(buffers *buffer.Manager, cfg *config.Config, listener *history.Listener, store *history.Store, logs *logging.RingHandler) error {
	model := New(buffers, cfg, listener, store, logs)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// IsTerminal reports whether stdout is attached to a terminal, the way
// the teacher's IsTerminal gates file-based verbose logging.
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
