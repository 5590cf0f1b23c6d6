package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/daemon"
)

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the event daemon that keeps open boards in sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return RunDaemon(cfg)
		},
	}
}

// RunDaemon serves board_changed events on the configured socket until
// interrupted.
func RunDaemon(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	// Ensure the data directory exists with secure permissions
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	server, err := daemon.NewServer(cfg.SocketPath())
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	slog.Info("kanban daemon starting", "socket_path", cfg.SocketPath(), "pid", os.Getpid())

	// Blocks until shutdown
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	slog.Info("kanban daemon shutting down gracefully")
	return nil
}
