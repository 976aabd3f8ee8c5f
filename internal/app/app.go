package app

import (
	"log/slog"

	"github.com/tarea-dev/tarea/internal/database"
	"github.com/tarea-dev/tarea/internal/events"
	projectservice "github.com/tarea-dev/tarea/internal/services/project"
	taskservice "github.com/tarea-dev/tarea/internal/services/task"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher

	logger *slog.Logger

	// Service layer (business logic)
	ProjectService projectservice.Service
	TaskService    taskservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
// With no options the app runs standalone: no event publishing, default logger.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := appConfig{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &App{
		repo:           repo,
		eventClient:    cfg.eventClient,
		logger:         cfg.logger,
		ProjectService: projectservice.NewService(repo, cfg.eventClient),
		TaskService:    taskservice.NewService(repo, cfg.eventClient),
	}
}

// Repo returns the underlying repository for direct database access.
// Provided for callers that need queries the services do not cover.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Logger returns the logger the app was configured with
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close performs cleanup of application resources.
// The event client is owned by the caller and closed there.
func (a *App) Close() error {
	return nil
}
