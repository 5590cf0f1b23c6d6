package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// migrations are applied in order; PRAGMA user_version records progress
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS columns (
		status TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT 'medium'
			CHECK (priority IN ('low', 'medium', 'high')),
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (status) REFERENCES columns(status)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status_position ON tasks(status, position)`,
}

// runMigrations creates the schema and seeds the canonical columns
func runMigrations(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
	}

	return seedColumns(ctx, db)
}

// seedColumns inserts any canonical column that is missing. Existing titles
// are left alone so renames survive restarts.
func seedColumns(ctx context.Context, db *sql.DB) error {
	for i, s := range models.Statuses() {
		_, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO columns (status, title, position) VALUES (?, ?, ?)`,
			string(s), s.DefaultTitle(), i,
		)
		if err != nil {
			return fmt.Errorf("failed to seed column %s: %w", s, err)
		}
	}
	return nil
}
