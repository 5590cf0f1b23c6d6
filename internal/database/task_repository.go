package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// TaskRepo handles all task-related database operations.
// Writes that touch column ordering are serialized by mu so two reorders
// cannot interleave their read-modify-write of positions.
type TaskRepo struct {
	db *sql.DB
	mu *sync.Mutex
}

// Create inserts a task at the end of its status column
func (r *TaskRepo) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var created *models.Task
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tasks WHERE status = ?`, string(t.Status),
		).Scan(&count); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, title, description, status, priority, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.Description, string(t.Status), string(t.Priority), count,
		); err != nil {
			return err
		}

		var err error
		created, err = scanTask(tx.QueryRowContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, t.ID))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// GetByID retrieves a single task
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves every task, ordered by column then position
func (r *TaskRepo) List(ctx context.Context) ([]*models.Task, error) {
	return listTasks(ctx, r.db)
}

// ListByStatus retrieves the tasks of a single column, ordered by position
func (r *TaskRepo) ListByStatus(ctx context.Context, status models.Status) ([]*models.Task, error) {
	return queryTasks(ctx, r.db,
		`SELECT `+taskColumns+` FROM tasks WHERE status = ? ORDER BY position, created_at, id`,
		string(status))
}

// Update replaces a task's editable fields
func (r *TaskRepo) Update(ctx context.Context, id, title, description string, priority models.Priority) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, priority = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, description, string(priority), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return expectOneRow(res, id)
}

// Delete removes a task and closes the gap it leaves in its column
func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		board, err := loadBoard(ctx, tx)
		if err != nil {
			return err
		}
		t := board.Task(id)
		if t == nil {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		status := t.Status

		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		if err := board.Remove(id); err != nil {
			return err
		}
		return writeColumn(ctx, tx, board, status, nil)
	})
}

// Move places a task in status. With anchorID set the task takes the
// anchor's slot, otherwise it is appended. Both the source and destination
// sequences are rewritten in one transaction.
func (r *TaskRepo) Move(ctx context.Context, id string, status models.Status, anchorID string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var moved *models.Task
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		board, err := loadBoard(ctx, tx)
		if err != nil {
			return err
		}
		t := board.Task(id)
		if t == nil {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		from := t.Status

		if err := board.Move(id, status, anchorID); err != nil {
			return err
		}

		touched := map[string]bool{id: true}
		if err := writeColumn(ctx, tx, board, from, touched); err != nil {
			return err
		}
		if from != status {
			if err := writeColumn(ctx, tx, board, status, touched); err != nil {
				return err
			}
		}

		moved = board.Task(id).Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// listTasks reads every task in board order
func listTasks(ctx context.Context, q querier) ([]*models.Task, error) {
	return queryTasks(ctx, q,
		`SELECT t.id, t.title, t.description, t.status, t.priority, t.position, t.created_at, t.updated_at
		 FROM tasks t
		 JOIN columns c ON c.status = t.status
		 ORDER BY c.position, t.position, t.created_at, t.id`)
}

// loadBoard rebuilds the in-memory board inside a transaction
func loadBoard(ctx context.Context, q querier) (*models.Board, error) {
	tasks, err := listTasks(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return models.NewBoard(tasks)
}

// writeColumn persists status and position for every task in a column.
// Tasks listed in bump also get a fresh updated_at.
func writeColumn(ctx context.Context, q querier, board *models.Board, status models.Status, bump map[string]bool) error {
	for _, t := range board.TasksIn(status) {
		query := `UPDATE tasks SET status = ?, position = ? WHERE id = ?`
		if bump[t.ID] {
			query = `UPDATE tasks SET status = ?, position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
		}
		if _, err := q.ExecContext(ctx, query, string(t.Status), t.Position, t.ID); err != nil {
			return fmt.Errorf("failed to write position of %s: %w", t.ID, err)
		}
	}
	return nil
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return nil
}
