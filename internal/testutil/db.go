package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const TestAppKey ContextKey = "testApp"

// SetupTestDB creates an in-memory database with the full schema.
// The schema mirrors the production migrations, including the secondary
// indexes, so query plans match what the real database would use.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// createTestSchema creates the complete database schema for testing.
// Tasks reference projects by id only; there is no foreign key
// constraint, matching the production schema where the cascade on
// project deletion is handled in the repository layer.
func createTestSchema(db *sql.DB) error {
	schema := `
	-- Projects table
	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Tasks table
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'todo',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Secondary indexes for filtered retrieval
	CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name);
	CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	`

	_, err := db.ExecContext(context.Background(), schema)
	return err
}

// CreateTestProject creates a test project and returns its ID
func CreateTestProject(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(), "INSERT INTO projects (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	projectID, _ := result.LastInsertId()
	return int(projectID)
}

// CreateTestTask creates a test task in the todo status and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, projectID int, title string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO tasks (project_id, title) VALUES (?, ?)", projectID, title)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	taskID, _ := result.LastInsertId()
	return int(taskID)
}

// CreateTestTaskWithStatus creates a test task with an explicit status and
// returns its ID. The status is written as-is so tests can seed values the
// services would never produce.
func CreateTestTaskWithStatus(t *testing.T, db *sql.DB, projectID int, title, status string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO tasks (project_id, title, status) VALUES (?, ?, ?)", projectID, title, status)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	taskID, _ := result.LastInsertId()
	return int(taskID)
}
