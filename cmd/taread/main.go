package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tarea-dev/tarea/internal/config"
	"github.com/tarea-dev/tarea/internal/daemon"
	"github.com/tarea-dev/tarea/internal/events"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	// Config file and TAREA_SOCKET may override where the socket lives
	socketPath := ""
	if cfg, err := config.Load(); err == nil {
		socketPath = cfg.SocketPath()
	}
	if socketPath == "" {
		var err error
		socketPath, err = events.DefaultSocketPath()
		if err != nil {
			slog.Error("failed to resolve socket path", "error", err)
			os.Exit(1)
		}
	}

	server, err := daemon.NewServer(socketPath)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("tarea daemon starting", "socket_path", socketPath, "pid", os.Getpid())

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("tarea daemon shutting down gracefully")
}
