package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/tarea-dev/tarea/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations.
// This is the unified test database setup used by all tests in this package.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// createTestProject inserts a project directly and returns its id
func createTestProject(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	result, err := db.Exec("INSERT INTO projects (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test project ID: %v", err)
	}
	return int(id)
}

// createTestTask inserts a task directly and returns its id
func createTestTask(t *testing.T, db *sql.DB, projectID int, title string, status models.Status) int {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO tasks (project_id, title, status) VALUES (?, ?, ?)",
		projectID, title, string(status),
	)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test task ID: %v", err)
	}
	return int(id)
}

// countRows returns the number of rows in a table
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}
