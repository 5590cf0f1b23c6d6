package app

import (
	"log/slog"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient  events.EventPublisher
	logger       *slog.Logger
	columnTitles map[models.Status]string
}

// WithEventPublisher sets the event publisher for the application.
// Passing a nil *events.Client is treated as no publisher.
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		if c, ok := ec.(*events.Client); ok && c == nil {
			return
		}
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithColumnTitles sets display titles that override the stored ones
func WithColumnTitles(titles map[models.Status]string) Option {
	return func(cfg *appConfig) {
		cfg.columnTitles = titles
	}
}
