package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/api"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/app"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Serve the board as a JSON API. Drag-end events from a browser front end
are accepted at POST /drag-end and resolved the same way as in the TUI.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default from config)")
	cmd.Flags().Float64("rate-limit", 0, "Requests per second per client, negative disables (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.HTTP.RateLimit, _ = cmd.Flags().GetFloat64("rate-limit")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	handler := api.NewHandler(application.TaskService, application.ColumnService,
		api.WithLogger(application.Logger()),
		api.WithRateLimit(cfg.HTTP.RateLimit),
	)
	srv := api.NewServer(cfg.HTTP.Addr, handler)

	slog.Info("http server starting", "addr", cfg.HTTP.Addr, "rate_limit", cfg.HTTP.RateLimit)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", cfg.HTTP.Addr)

	if err := api.ListenAndServe(ctx, srv); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	slog.Info("http server stopped")
	return nil
}
