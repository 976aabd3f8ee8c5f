package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/tarea-dev/tarea/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

// Create inserts a new task and returns it with its assigned id
// and creation timestamp.
func (r *TaskRepo) Create(ctx context.Context, projectID int, title string, status models.Status) (*models.Task, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (project_id, title, status) VALUES (?, ?, ?)`,
		projectID, title, string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task '%s': %w", title, err)
	}

	taskID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get task ID after insert: %w", err)
	}

	// Retrieve the created task to get the timestamp
	return r.GetByID(ctx, int(taskID))
}

// Put inserts-or-replaces a task by its id. The task must already
// carry an id; Put never assigns one.
func (r *TaskRepo) Put(ctx context.Context, task *models.Task) error {
	if task.ID == 0 {
		return fmt.Errorf("cannot put task without an id")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO tasks (id, project_id, title, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		task.ID, task.ProjectID, task.Title, string(task.Status), task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put task %d: %w", task.ID, err)
	}
	return nil
}

// GetByID retrieves a task by its ID
func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, title, status, created_at FROM tasks WHERE id = ?`,
		id,
	).Scan(&task.ID, &task.ProjectID, &task.Title, &task.Status, &task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

// GetAll retrieves all tasks ordered by ID
func (r *TaskRepo) GetAll(ctx context.Context) ([]*models.Task, error) {
	return r.queryTasks(ctx, `SELECT id, project_id, title, status, created_at FROM tasks ORDER BY id`)
}

// GetByProject retrieves all tasks for a project, ordered by ID
func (r *TaskRepo) GetByProject(ctx context.Context, projectID int) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT id, project_id, title, status, created_at FROM tasks WHERE project_id = ? ORDER BY id`,
		projectID,
	)
}

// GetByStatus retrieves all tasks with the given status, ordered by ID
func (r *TaskRepo) GetByStatus(ctx context.Context, status models.Status) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT id, project_id, title, status, created_at FROM tasks WHERE status = ? ORDER BY id`,
		string(status),
	)
}

// Delete removes a task from the database
func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}

// CountByProject returns the number of tasks belonging to a project
func (r *TaskRepo) CountByProject(ctx context.Context, projectID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks for project %d: %w", projectID, err)
	}
	return count, nil
}

// queryTasks runs a task SELECT and scans the rows into models.
// The result is never nil; no matches yield an empty slice.
func (r *TaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	tasks := make([]*models.Task, 0, 10)
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.ID, &task.ProjectID, &task.Title, &task.Status, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}
