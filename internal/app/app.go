package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/database"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
	columnservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/column"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
)

// App holds all application services and provides dependency injection.
type App struct {
	db     *sql.DB
	ownsDB bool

	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates; nil when no daemon is reachable
	eventClient events.EventPublisher

	logger *slog.Logger

	// Service layer (business logic)
	TaskService   taskservice.Service
	ColumnService columnservice.Service
}

// New creates a new App over an open database.
// The caller keeps ownership of db.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	repo := database.NewRepository(db, database.WithTitleOverrides(cfg.columnTitles))
	return &App{
		db:            db,
		repo:          repo,
		eventClient:   cfg.eventClient,
		logger:        cfg.logger,
		TaskService:   taskservice.NewService(repo, cfg.eventClient),
		ColumnService: columnservice.NewService(repo, cfg.eventClient),
	}
}

// Open initializes the database named by cfg and, when a daemon is
// listening, connects an event client. A missing daemon is not an error:
// the app then runs without live updates.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	all := []Option{WithColumnTitles(cfg.ColumnTitles())}
	if client := connectEvents(ctx, cfg); client != nil {
		all = append(all, WithEventPublisher(client))
	}
	all = append(all, opts...)

	a := New(db, all...)
	a.ownsDB = true
	return a, nil
}

// connectEvents returns a connected client or nil
func connectEvents(ctx context.Context, cfg *config.Config) *events.Client {
	client, err := events.NewClient(cfg.SocketPath(), events.WithDebounce(cfg.Debounce()))
	if err != nil {
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := client.Connect(dialCtx); err != nil {
		slog.Debug("running without live updates", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Events returns the event publisher, or nil when running without a daemon
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close flushes pending events and, if Open created it, closes the database.
func (a *App) Close() error {
	var errs []error
	if a.eventClient != nil {
		errs = append(errs, a.eventClient.Close())
	}
	if a.ownsDB && a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
