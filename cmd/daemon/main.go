package main

import (
	"log/slog"
	"os"

	"github.com/Lavr5000/KanbanBoard-sub003/cmd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/logging"
)

// Standalone daemon binary for service managers; equivalent to `kanban daemon`.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if closer, err := logging.Init(cfg.LogDir(), cfg.LogLevel); err == nil {
		defer closer.Close()
	}

	if err := cmd.RunDaemon(cfg); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}
}
