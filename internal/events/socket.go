package events

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSocketPath returns the on-disk location of the daemon socket,
// ~/.tarea/tarea.sock, creating the directory if needed.
func DefaultSocketPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	tareaDir := filepath.Join(home, ".tarea")
	if err := os.MkdirAll(tareaDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	return filepath.Join(tareaDir, "tarea.sock"), nil
}
