package database

import (
	"context"

	"github.com/tarea-dev/tarea/internal/models"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetAllTasks(ctx context.Context) ([]*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	GetTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error)
	GetTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error)
	GetTaskCountByProject(ctx context.Context, projectID int) (int, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, projectID int, title string, status models.Status) (*models.Task, error)
	PutTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id int) error
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}
