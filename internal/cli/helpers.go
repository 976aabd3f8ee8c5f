package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tarea-dev/tarea/internal/models"
)

// GetProjectID resolves the project a command operates on. The --project
// flag wins, then the TAREA_PROJECT environment variable (exported by
// 'tarea use project'). Returns 0 when neither source names a project.
func GetProjectID(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("project") {
		id, err := cmd.Flags().GetInt("project")
		if err != nil {
			return 0, err
		}
		if id <= 0 {
			return 0, fmt.Errorf("invalid project ID %d (must be positive)", id)
		}
		return id, nil
	}

	if env := os.Getenv("TAREA_PROJECT"); env != "" {
		id, err := strconv.Atoi(env)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid TAREA_PROJECT value '%s' (must be a positive integer)", env)
		}
		return id, nil
	}

	return 0, nil
}

// ParseStatus maps a status string to its canonical value
func ParseStatus(statusStr string) (models.Status, error) {
	status := models.Status(strings.ToLower(strings.TrimSpace(statusStr)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status '%s' (must be: todo, doing, done)", statusStr)
	}
	return status, nil
}
