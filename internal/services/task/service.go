package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/database"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/dnd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// publishRetries bounds how often a board_changed event is retried
const publishRetries = 3

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, id string) (*models.Task, error)
	GetBoard(ctx context.Context) (*models.Board, error)
	ListTasks(ctx context.Context, status models.Status) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Task movements
	MoveTask(ctx context.Context, id string, status models.Status, anchorID string) (*models.Task, error)
	DropTask(ctx context.Context, ev dnd.DragEvent) (dnd.Resolution, error)
}

// CreateTaskRequest encapsulates all data needed to create a task.
// Empty Status and Priority fall back to todo and medium.
type CreateTaskRequest struct {
	Title       string
	Description string
	Status      models.Status
	Priority    models.Priority
}

// UpdateTaskRequest encapsulates an edit. Nil fields are left unchanged.
// Status is not editable here; use MoveTask.
type UpdateTaskRequest struct {
	TaskID      string
	Title       *string
	Description *string
	Priority    *models.Priority
}

type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
	logger      *slog.Logger
}

// NewService creates a new task service. eventClient may be nil.
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
		logger:      slog.Default(),
	}
}

// GetTask retrieves a single task
func (s *service) GetTask(ctx context.Context, id string) (*models.Task, error) {
	id, ok := types.NormalizeTaskID(id)
	if !ok {
		return nil, ErrInvalidTaskID
	}
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

// GetBoard loads a consistent snapshot of every column
func (s *service) GetBoard(ctx context.Context) (*models.Board, error) {
	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return board, nil
}

// ListTasks lists one column, or the whole board in display order when status is empty
func (s *service) ListTasks(ctx context.Context, status models.Status) ([]*models.Task, error) {
	if status == "" {
		return s.repo.ListTasks(ctx)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.repo.ListTasksByStatus(ctx, status)
}

// CreateTask validates the request and appends the task to its column
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if req.Status == "" {
		req.Status = models.StatusTodo
	}
	if req.Priority == "" {
		req.Priority = models.DefaultPriority
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := validateCreateTask(req); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTask(ctx, &models.Task{
		ID:          types.NewTaskID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return nil, err
	}

	s.publish(created.ID, created.Status)
	return created, nil
}

// UpdateTask applies the non-nil fields of req
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	taskID, ok := types.NormalizeTaskID(req.TaskID)
	if !ok {
		return nil, ErrInvalidTaskID
	}
	req.TaskID = taskID

	current, err := s.repo.GetTask(ctx, req.TaskID)
	if err != nil {
		return nil, translate(err)
	}

	title, description, priority := current.Title, current.Description, current.Priority
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *req.Priority)
		}
		priority = *req.Priority
	}

	if err := s.repo.UpdateTask(ctx, req.TaskID, title, description, priority); err != nil {
		return nil, translate(err)
	}

	updated, err := s.repo.GetTask(ctx, req.TaskID)
	if err != nil {
		return nil, translate(err)
	}

	s.publish(updated.ID, updated.Status)
	return updated, nil
}

// DeleteTask removes a task and closes the gap in its column
func (s *service) DeleteTask(ctx context.Context, id string) error {
	id, ok := types.NormalizeTaskID(id)
	if !ok {
		return ErrInvalidTaskID
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return translate(err)
	}

	s.publish(id, "")
	return nil
}

// MoveTask moves a task to status. A non-empty anchorID places it in the
// anchor's slot; otherwise it is appended to the column.
func (s *service) MoveTask(ctx context.Context, id string, status models.Status, anchorID string) (*models.Task, error) {
	id, ok := types.NormalizeTaskID(id)
	if !ok {
		return nil, ErrInvalidTaskID
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if anchorID != "" {
		normalized, ok := types.NormalizeTaskID(anchorID)
		if !ok {
			return nil, fmt.Errorf("%w: anchor %q", ErrInvalidTaskID, anchorID)
		}
		anchorID = normalized
	}

	moved, err := s.repo.MoveTask(ctx, id, status, anchorID)
	if err != nil {
		return nil, translate(err)
	}

	s.publish(moved.ID, moved.Status)
	return moved, nil
}

// DropTask resolves a drag-end event against a fresh board snapshot and
// commits the resulting move, if any. The move itself re-reads the board
// inside its transaction, so a stale snapshot cannot corrupt ordering.
func (s *service) DropTask(ctx context.Context, ev dnd.DragEvent) (dnd.Resolution, error) {
	if id, ok := types.NormalizeTaskID(ev.ActiveID); ok {
		ev.ActiveID = id
	}
	if id, ok := types.NormalizeTaskID(ev.OverID); ok {
		ev.OverID = id
	}
	if ev.Over != nil && ev.Over.Task != nil {
		if id, ok := types.NormalizeTaskID(ev.Over.Task.ID); ok && id != ev.Over.Task.ID {
			over := *ev.Over
			over.Task = ev.Over.Task.Clone()
			over.Task.ID = id
			ev.Over = &over
		}
	}

	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return dnd.Resolution{}, fmt.Errorf("failed to load board: %w", err)
	}

	mover := dnd.MoverFunc(func(ctx context.Context, taskID string, status models.Status, anchorID string) error {
		_, err := s.MoveTask(ctx, taskID, status, anchorID)
		return err
	})

	resolver := dnd.NewResolver(board, mover, dnd.WithLogger(s.logger))
	return resolver.HandleDragEnd(ctx, ev)
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateCreateTask(req CreateTaskRequest) error {
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if !req.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if !req.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, req.Priority)
	}
	return nil
}

// translate maps storage and board errors onto this package's sentinels,
// keeping the original in the chain.
func translate(err error) error {
	switch {
	case errors.Is(err, database.ErrTaskNotFound), errors.Is(err, models.ErrTaskNotOnBoard):
		return fmt.Errorf("%w: %w", ErrTaskNotFound, err)
	case errors.Is(err, models.ErrAnchorNotOnBoard):
		return fmt.Errorf("%w: %w", ErrAnchorNotFound, err)
	case errors.Is(err, models.ErrAnchorColumnMismatch):
		return fmt.Errorf("%w: %w", ErrAnchorMismatch, err)
	case errors.Is(err, models.ErrUnknownStatus):
		return fmt.Errorf("%w: %w", ErrInvalidStatus, err)
	}
	return err
}

// publish notifies the daemon that the board changed
func (s *service) publish(taskID string, status models.Status) {
	if s.eventClient == nil {
		return
	}
	if err := events.PublishWithRetry(s.eventClient, events.BoardChanged(taskID, string(status)), publishRetries); err != nil {
		s.logger.Debug("board change not published", "task_id", taskID, "error", err)
	}
}
