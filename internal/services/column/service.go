package column

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/database"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// Service defines all column-related business operations. The set of
// columns is fixed; only their titles can change.
type Service interface {
	ListColumns(ctx context.Context) ([]*models.Column, error)
	GetColumn(ctx context.Context, status models.Status) (*models.Column, error)
	RenameColumn(ctx context.Context, status models.Status, title string) error
}

// publishRetries bounds how often a board_changed event is retried
const publishRetries = 3

type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
	logger      *slog.Logger
}

// NewService creates a new column service. eventClient may be nil.
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
		logger:      slog.Default(),
	}
}

// ListColumns returns every column in display order with its task ids
func (s *service) ListColumns(ctx context.Context) ([]*models.Column, error) {
	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}
	return board.Columns(), nil
}

// GetColumn returns a single column
func (s *service) GetColumn(ctx context.Context, status models.Status) (*models.Column, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}
	return board.Column(status), nil
}

// RenameColumn changes the display title of a column
func (s *service) RenameColumn(ctx context.Context, status models.Status, title string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if err := s.repo.RenameColumn(ctx, status, title); err != nil {
		if errors.Is(err, database.ErrColumnNotFound) {
			return fmt.Errorf("%w: %w", ErrColumnNotFound, err)
		}
		return err
	}

	s.publish(status)
	return nil
}

// publish notifies the daemon that a column title changed
func (s *service) publish(status models.Status) {
	if s.eventClient == nil {
		return
	}
	if err := events.PublishWithRetry(s.eventClient, events.BoardChanged("", string(status)), publishRetries); err != nil {
		s.logger.Debug("column change not published", "status", status, "error", err)
	}
}
