// Package project implements the business operations for projects:
// validated creation and the cascading delete that removes a project's
// tasks along with it.
package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tarea-dev/tarea/internal/events"
	"github.com/tarea-dev/tarea/internal/models"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	GetTaskCount(ctx context.Context, projectID int) (int, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) error
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	Name string
}

// repository defines the data access methods needed by the project service.
// This interface is private to the service layer.
type repository interface {
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	DeleteProject(ctx context.Context, id int) error
	GetTaskCountByProject(ctx context.Context, projectID int) (int, error)
}

// service implements Service interface with private repository
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new project service with private repository
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetAllProjects retrieves all projects
func (s *service) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.GetAllProjects(ctx)
}

// GetProjectByID retrieves a specific project
func (s *service) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}

	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// GetProjectByName retrieves the oldest project with the given name
func (s *service) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	project, err := s.repo.GetProjectByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project by name: %w", err)
	}
	return project, nil
}

// GetTaskCount returns the number of tasks in a project
func (s *service) GetTaskCount(ctx context.Context, projectID int) (int, error) {
	if projectID <= 0 {
		return 0, ErrInvalidProjectID
	}
	return s.repo.GetTaskCountByProject(ctx, projectID)
}

// CreateProject creates a new project with validation.
// The name is trimmed of surrounding whitespace before storage; a name
// that is empty after trimming is rejected and nothing is stored.
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}

	project, err := s.repo.CreateProject(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Publish event after successful creation
	s.publishProjectEvent(project.ID)

	return project, nil
}

// DeleteProject deletes a project and all of its tasks. The repository
// performs the cascade in a single transaction, so a failure leaves both
// the project and its tasks in place.
func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}

	// Verify the project exists so callers can report a missing id
	if _, err := s.repo.GetProjectByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	// Publish event after successful deletion
	s.publishProjectEvent(id)

	return nil
}

// publishProjectEvent publishes a project event
func (s *service) publishProjectEvent(projectID int) {
	if s.eventClient == nil {
		return
	}

	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventDatabaseChanged,
		ProjectID: projectID,
	}, 3)
}
