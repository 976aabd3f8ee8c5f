package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tarea-dev/tarea/internal/app"
	"github.com/tarea-dev/tarea/internal/config"
	"github.com/tarea-dev/tarea/internal/database"
	"github.com/tarea-dev/tarea/internal/events"
)

// CLI represents the CLI application context
type CLI struct {
	App         *app.App // Application container with services
	db          *sql.DB
	eventClient events.EventPublisher
	ctx         context.Context
}

// NewCLI initializes the CLI with database and optional daemon connection
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var db *sql.DB
	if dbPath := cfg.DatabasePath(); dbPath != "" {
		db, err = database.Open(ctx, dbPath)
	} else {
		db, err = database.InitDB(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Try to connect to daemon (optional - silent fallback). Commands work
	// without it; mutations simply go unannounced to other sessions.
	var eventClient events.EventPublisher
	socketPath := cfg.SocketPath()
	if socketPath == "" {
		socketPath, _ = events.DefaultSocketPath()
	}
	if socketPath != "" {
		if client, err := events.NewClient(socketPath); err == nil {
			if err := client.Connect(ctx); err == nil {
				eventClient = client
			}
		}
	}

	repo := database.NewRepository(db)

	var opts []app.Option
	if eventClient != nil {
		opts = append(opts, app.WithEventPublisher(eventClient))
	}
	application := app.New(repo, opts...)

	return &CLI{
		App:         application,
		db:          db,
		eventClient: eventClient,
		ctx:         ctx,
	}, nil
}

// Close cleans up CLI resources. Both fields are nil when the CLI was
// built around an injected test app, whose resources the test owns.
func (c *CLI) Close() error {
	if c.eventClient != nil {
		if err := c.eventClient.Close(); err != nil {
			return err
		}
	}
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
