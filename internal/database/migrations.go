package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaVersion is the current schema version, tracked via PRAGMA
// user_version. Opening an older database applies the missing steps.
const schemaVersion = 1

// runMigrations brings the database schema up to schemaVersion
func runMigrations(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version >= schemaVersion {
		return nil
	}

	if version < 1 {
		if err := migrateToV1(ctx, db); err != nil {
			return err
		}
	}

	// PRAGMA statements cannot take bound parameters
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

// migrateToV1 creates the initial schema: the projects and tasks tables
// plus the secondary indexes used for filtered retrieval. Tasks reference
// projects by id only; there is no foreign key constraint, so the cascade
// on project deletion is handled in the repository layer.
func migrateToV1(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create projects table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'todo',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_projects_name
		ON projects(name)
	`)
	if err != nil {
		return fmt.Errorf("failed to create projects name index: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_tasks_project
		ON tasks(project_id)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tasks project index: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_tasks_status
		ON tasks(status)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tasks status index: %w", err)
	}

	return nil
}
