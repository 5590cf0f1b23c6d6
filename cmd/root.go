package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli/board"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli/column"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli/setup"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/logging"
)

// logFile is the open log file for the running command, if any
var logFile io.Closer

var rootCmd = &cobra.Command{
	Use:   "kanban",
	Short: "Kanban - a terminal kanban board with drag and drop",
	Long: `Kanban keeps tasks in four columns (To Do, In Progress, Review, Done).
Tasks can be moved from the CLI, the TUI, or the HTTP API; a small daemon
keeps every open board in sync.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  initLogging,
	PersistentPostRunE: closeLogging,
}

func init() {
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(daemonCmd())
	rootCmd.AddCommand(setup.SetupCmd())
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if closeErr := closeLogging(nil, nil); closeErr != nil {
		slog.Warn("failed to close log file", "error", closeErr)
	}
	return err
}

// initLogging sends logs to the configured data directory. A broken config
// is left for the command itself to report.
func initLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}

	closer, err := logging.Init(cfg.LogDir(), cfg.LogLevel)
	if err != nil {
		return nil
	}
	logFile = closer
	slog.Debug("command started", "command", cmd.CommandPath())
	return nil
}

func closeLogging(cmd *cobra.Command, args []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
