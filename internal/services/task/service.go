// Package task implements the business operations for tasks: validated
// creation, filtered listing, deletion, and advancement through the
// todo -> doing -> done -> todo status cycle.
package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tarea-dev/tarea/internal/events"
	"github.com/tarea-dev/tarea/internal/models"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetAllTasks(ctx context.Context) ([]*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	ListTasks(ctx context.Context, filter Filter) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	AdvanceTask(ctx context.Context, id int) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	ProjectID int
	Title     string
	Status    models.Status // Optional: empty means the default status
}

// Filter narrows task listings. Zero values mean "no filter": a
// ProjectID of 0 matches every project and an empty Status matches
// every status. Both filters combine with AND.
type Filter struct {
	ProjectID int
	Status    models.Status
}

// repository defines the data access methods needed by the task service.
// This interface is private to the service layer.
type repository interface {
	CreateTask(ctx context.Context, projectID int, title string, status models.Status) (*models.Task, error)
	PutTask(ctx context.Context, task *models.Task) error
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	GetAllTasks(ctx context.Context) ([]*models.Task, error)
	GetTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error)
	GetTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// service implements Service interface
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new task service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// CreateTask handles task creation with validation. A task whose project
// id is zero or negative, or whose title is empty after trimming, is
// rejected and nothing is stored. The title itself is stored exactly as
// submitted. An empty status falls back to the default.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validateCreateTask(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.DefaultStatus
	}

	task, err := s.repo.CreateTask(ctx, req.ProjectID, req.Title, status)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// Publish event (if event client exists)
	s.publishTaskEvent(task.ProjectID)

	return task, nil
}

// AdvanceTask moves a task one step through the status cycle and
// replaces the stored record. The transition is total: an unknown
// stored status advances to todo. A missing id leaves the store
// unchanged and reports ErrTaskNotFound.
func (s *service) AdvanceTask(ctx context.Context, id int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}

	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task.Status = task.Status.Next()

	if err := s.repo.PutTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to advance task: %w", err)
	}

	// Publish event
	s.publishTaskEvent(task.ProjectID)

	return task, nil
}

// DeleteTask handles task deletion
func (s *service) DeleteTask(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidTaskID
	}

	// Load first so callers can report a missing id and the event
	// carries the owning project
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	// Publish event
	s.publishTaskEvent(task.ProjectID)

	return nil
}

// GetAllTasks retrieves all tasks
func (s *service) GetAllTasks(ctx context.Context) ([]*models.Task, error) {
	return s.repo.GetAllTasks(ctx)
}

// GetTaskByID retrieves a specific task
func (s *service) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}

	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks retrieves tasks matching the filter. Single-field filters
// use the secondary indexes directly; the combined filter reads the
// project index and narrows by status in memory.
func (s *service) ListTasks(ctx context.Context, filter Filter) ([]*models.Task, error) {
	switch {
	case filter.ProjectID > 0 && filter.Status != "":
		tasks, err := s.repo.GetTasksByProject(ctx, filter.ProjectID)
		if err != nil {
			return nil, err
		}
		filtered := make([]*models.Task, 0, len(tasks))
		for _, task := range tasks {
			if task.Status == filter.Status {
				filtered = append(filtered, task)
			}
		}
		return filtered, nil

	case filter.ProjectID > 0:
		return s.repo.GetTasksByProject(ctx, filter.ProjectID)

	case filter.Status != "":
		return s.repo.GetTasksByStatus(ctx, filter.Status)

	default:
		return s.repo.GetAllTasks(ctx)
	}
}

// validateCreateTask validates a CreateTaskRequest
func (s *service) validateCreateTask(req CreateTaskRequest) error {
	if req.ProjectID <= 0 {
		return ErrInvalidProjectID
	}
	if strings.TrimSpace(req.Title) == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > 255 {
		return ErrTitleTooLong
	}
	return nil
}

// publishTaskEvent publishes a database change event for the owning project
func (s *service) publishTaskEvent(projectID int) {
	if s.eventClient == nil {
		return
	}

	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventDatabaseChanged,
		ProjectID: projectID,
	}, 3)
}
