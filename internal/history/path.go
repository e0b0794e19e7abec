package history

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = ".config/qtab"
const dbFile = "history.sqlite"

// DefaultPath returns ~/.config/qtab/history.sqlite.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, appDir, dbFile), nil
}
