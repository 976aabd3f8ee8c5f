package database

import (
	"context"
	"database/sql"

	"github.com/tarea-dev/tarea/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*ProjectRepo
	*TaskRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ProjectRepo: &ProjectRepo{db: db},
		TaskRepo:    &TaskRepo{db: db},
	}
}

// Wrapper methods for ProjectRepo to maintain existing API
func (r *Repository) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	return r.ProjectRepo.Create(ctx, name)
}

func (r *Repository) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return r.ProjectRepo.GetAll(ctx)
}

func (r *Repository) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	return r.ProjectRepo.GetByID(ctx, id)
}

func (r *Repository) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	return r.ProjectRepo.GetByName(ctx, name)
}

func (r *Repository) DeleteProject(ctx context.Context, id int) error {
	return r.ProjectRepo.Delete(ctx, id)
}

// Wrapper methods for TaskRepo to maintain existing API
func (r *Repository) CreateTask(ctx context.Context, projectID int, title string, status models.Status) (*models.Task, error) {
	return r.TaskRepo.Create(ctx, projectID, title, status)
}

func (r *Repository) PutTask(ctx context.Context, task *models.Task) error {
	return r.TaskRepo.Put(ctx, task)
}

func (r *Repository) GetAllTasks(ctx context.Context) ([]*models.Task, error) {
	return r.TaskRepo.GetAll(ctx)
}

func (r *Repository) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	return r.TaskRepo.GetByID(ctx, id)
}

func (r *Repository) GetTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error) {
	return r.TaskRepo.GetByProject(ctx, projectID)
}

func (r *Repository) GetTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error) {
	return r.TaskRepo.GetByStatus(ctx, status)
}

func (r *Repository) DeleteTask(ctx context.Context, id int) error {
	return r.TaskRepo.Delete(ctx, id)
}

func (r *Repository) GetTaskCountByProject(ctx context.Context, projectID int) (int, error) {
	return r.TaskRepo.CountByProject(ctx, projectID)
}
