// Package launcher wires up and runs the interactive TUI.
package launcher

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tarea-dev/tarea/internal/app"
	"github.com/tarea-dev/tarea/internal/config"
	"github.com/tarea-dev/tarea/internal/database"
	"github.com/tarea-dev/tarea/internal/events"
	"github.com/tarea-dev/tarea/internal/logging"
	"github.com/tarea-dev/tarea/internal/tui"
)

// Launch starts the TUI application
func Launch() error {
	// Initialize logging to file before anything else; stdout belongs
	// to the TUI from here on
	if err := logging.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Connect to daemon for live updates (optional - daemon may not be running)
	socketPath := cfg.SocketPath()
	if socketPath == "" {
		socketPath, err = events.DefaultSocketPath()
		if err != nil {
			return fmt.Errorf("failed to resolve socket path: %w", err)
		}
	}

	eventClient, err := events.NewClient(socketPath)
	if err != nil {
		daemonErr := events.ClassifyDaemonError(err)
		slog.Warn("failed to create daemon client", "message", daemonErr.Message, "hint", daemonErr.Hint)
		slog.Info("continuing without live updates")
		eventClient = nil
	} else {
		if err := eventClient.Connect(ctx); err != nil {
			daemonErr := events.ClassifyDaemonError(err)
			slog.Warn("failed to connect to daemon", "message", daemonErr.Message, "hint", daemonErr.Hint)
			slog.Info("continuing without live updates")
			eventClient = nil
		}
	}

	// Cleanup daemon connection on exit
	defer func() {
		if eventClient != nil {
			if err := eventClient.Close(); err != nil {
				slog.Error("error closing event client", "error", err)
			}
		}
	}()

	initCtx := context.Background()
	dbConn, err := openDatabase(initCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// database cleanup
	defer func() {
		// Create drain context with 5-second timeout
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer drainCancel()

		// Allow time for in-flight operations to complete
		select {
		case <-drainCtx.Done():
			slog.Info("drain period complete, closing database")
		case <-time.After(100 * time.Millisecond):
			// Small delay to allow operations to wrap up
		}

		if err := dbConn.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	repo := database.NewRepository(dbConn)

	// A nil *Client must stay a nil interface for the TUI's checks
	var publisher events.EventPublisher
	opts := []app.Option{app.WithLogger(slog.Default())}
	if eventClient != nil {
		publisher = eventClient
		opts = append(opts, app.WithEventPublisher(eventClient))
	}
	application := app.New(repo, opts...)

	model := tui.New(ctx, application, cfg, publisher)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		// Give in-flight database queries a moment to finish
		time.Sleep(1 * time.Second)
	}

	return nil
}

// openDatabase opens the configured database, falling back to the default
// location under ~/.tarea when none is configured.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if dbPath := cfg.DatabasePath(); dbPath != "" {
		return database.Open(ctx, dbPath)
	}
	return database.InitDB(ctx)
}
