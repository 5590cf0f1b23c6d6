package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/database"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// SetupTestDB creates an in-memory database with the full schema and seeded columns
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestTask appends a task to the given column and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, status models.Status, title string) string {
	t.Helper()
	ctx := context.Background()

	var next int
	err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE status = ?", string(status)).Scan(&next)
	if err != nil {
		t.Fatalf("Failed to get next position: %v", err)
	}

	id := types.NewTaskID()
	_, err = db.ExecContext(ctx,
		"INSERT INTO tasks (id, title, status, priority, position) VALUES (?, ?, ?, ?, ?)",
		id, title, string(status), string(models.DefaultPriority), next)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return id
}

// ColumnTaskIDs returns the ids stored in a column, in position order
func ColumnTaskIDs(t *testing.T, db *sql.DB, status models.Status) []string {
	t.Helper()
	rows, err := db.QueryContext(context.Background(),
		"SELECT id FROM tasks WHERE status = ? ORDER BY position", string(status))
	if err != nil {
		t.Fatalf("Failed to query column: %v", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Failed to scan id: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate column: %v", err)
	}
	return ids
}
