package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*TaskRepo
	*ColumnRepo

	titleOverrides map[models.Status]string
}

// RepoOption configures a Repository
type RepoOption func(*Repository)

// WithTitleOverrides sets column titles that take precedence over the stored ones
func WithTitleOverrides(titles map[models.Status]string) RepoOption {
	return func(r *Repository) {
		r.titleOverrides = titles
	}
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB, opts ...RepoOption) *Repository {
	r := &Repository{
		TaskRepo:   &TaskRepo{db: db, mu: &sync.Mutex{}},
		ColumnRepo: &ColumnRepo{db: db},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return r.TaskRepo.GetByID(ctx, id)
}

func (r *Repository) ListTasks(ctx context.Context) ([]*models.Task, error) {
	return r.TaskRepo.List(ctx)
}

func (r *Repository) ListTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error) {
	return r.TaskRepo.ListByStatus(ctx, status)
}

func (r *Repository) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	return r.TaskRepo.Create(ctx, t)
}

func (r *Repository) UpdateTask(ctx context.Context, id, title, description string, priority models.Priority) error {
	return r.TaskRepo.Update(ctx, id, title, description, priority)
}

func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	return r.TaskRepo.Delete(ctx, id)
}

func (r *Repository) MoveTask(ctx context.Context, id string, status models.Status, anchorID string) (*models.Task, error) {
	return r.TaskRepo.Move(ctx, id, status, anchorID)
}

func (r *Repository) ColumnTitles(ctx context.Context) (map[models.Status]string, error) {
	return r.ColumnRepo.Titles(ctx)
}

func (r *Repository) RenameColumn(ctx context.Context, status models.Status, title string) error {
	return r.ColumnRepo.UpdateTitle(ctx, status, title)
}

// LoadBoard reads all tasks and column titles into a fresh board
func (r *Repository) LoadBoard(ctx context.Context) (*models.Board, error) {
	board, err := loadBoard(ctx, r.TaskRepo.db)
	if err != nil {
		return nil, err
	}
	titles, err := r.ColumnRepo.Titles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load column titles: %w", err)
	}
	board.SetTitles(titles)
	board.SetTitles(r.titleOverrides)
	return board, nil
}
