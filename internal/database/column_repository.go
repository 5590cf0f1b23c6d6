package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// ColumnRepo handles column titles. The set of columns is fixed by the
// canonical statuses and seeded by migrations.
type ColumnRepo struct {
	db *sql.DB
}

// Titles returns the stored title for every column
func (r *ColumnRepo) Titles(ctx context.Context) (map[models.Status]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, title FROM columns ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	titles := make(map[models.Status]string)
	for rows.Next() {
		var status, title string
		if err := rows.Scan(&status, &title); err != nil {
			return nil, err
		}
		titles[models.Status(status)] = title
	}
	return titles, rows.Err()
}

// UpdateTitle renames a column
func (r *ColumnRepo) UpdateTitle(ctx context.Context, status models.Status, title string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE columns SET title = ? WHERE status = ?`, title, string(status))
	if err != nil {
		return fmt.Errorf("failed to rename column: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, status)
	}
	return nil
}
