package cli

import (
	"database/sql"
	"testing"

	"github.com/tarea-dev/tarea/internal/testutil"
)

// CreateTestProject wraps testutil.CreateTestProject for CLI tests
func CreateTestProject(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	return testutil.CreateTestProject(t, db, name)
}

// CreateTestTask wraps testutil.CreateTestTask for CLI tests
func CreateTestTask(t *testing.T, db *sql.DB, projectID int, title string) int {
	t.Helper()
	return testutil.CreateTestTask(t, db, projectID, title)
}

// CreateTestTaskWithStatus wraps testutil.CreateTestTaskWithStatus for CLI tests
func CreateTestTaskWithStatus(t *testing.T, db *sql.DB, projectID int, title, status string) int {
	t.Helper()
	return testutil.CreateTestTaskWithStatus(t, db, projectID, title, status)
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()
	return testutil.ParseJSON(t, output)
}
