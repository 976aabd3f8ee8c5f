package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/tarea-dev/tarea/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

// Create inserts a new project and returns it with its assigned id
// and creation timestamp.
func (r *ProjectRepo) Create(ctx context.Context, name string) (*models.Project, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name) VALUES (?)`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project '%s': %w", name, err)
	}

	projectID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get project ID after insert: %w", err)
	}

	// Retrieve the created project to get the timestamp
	return r.GetByID(ctx, int(projectID))
}

// GetByID retrieves a project by its ID
func (r *ProjectRepo) GetByID(ctx context.Context, id int) (*models.Project, error) {
	project := &models.Project{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE id = ?`,
		id,
	).Scan(&project.ID, &project.Name, &project.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return project, nil
}

// GetByName retrieves the oldest project with the given name.
// Names are not unique; earlier projects win ties.
func (r *ProjectRepo) GetByName(ctx context.Context, name string) (*models.Project, error) {
	project := &models.Project{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE name = ? ORDER BY id LIMIT 1`,
		name,
	).Scan(&project.ID, &project.Name, &project.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get project '%s': %w", name, err)
	}
	return project, nil
}

// GetAll retrieves all projects ordered by ID
func (r *ProjectRepo) GetAll(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all projects: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	projects := make([]*models.Project, 0, 10)
	for rows.Next() {
		project := &models.Project{}
		if err := rows.Scan(&project.ID, &project.Name, &project.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// Delete removes a project and all its tasks in a single transaction.
// The tasks table carries no foreign key to projects, so the cascade
// is done here rather than by the database.
func (r *ProjectRepo) Delete(ctx context.Context, id int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete tasks for project %d: %w", id, err)
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete project %d: %w", id, err)
		}

		return nil
	})
}
