package database

import (
	"context"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context) ([]*models.Task, error)
	ListTasksByStatus(ctx context.Context, status models.Status) ([]*models.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id, title, description string, priority models.Priority) error
	DeleteTask(ctx context.Context, id string) error
}

// TaskMover defines the ordering write: moving between and within columns.
type TaskMover interface {
	MoveTask(ctx context.Context, id string, status models.Status, anchorID string) (*models.Task, error)
}

// ColumnRepository defines column operations.
type ColumnRepository interface {
	ColumnTitles(ctx context.Context) (map[models.Status]string, error)
	RenameColumn(ctx context.Context, status models.Status, title string) error
}

// DataStore defines the unified interface for all data operations. Consumers
// can depend on the smaller interfaces for narrower test doubles.
type DataStore interface {
	TaskReader
	TaskWriter
	TaskMover
	ColumnRepository
	LoadBoard(ctx context.Context) (*models.Board, error)
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
