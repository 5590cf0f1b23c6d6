package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestRepo creates an in-memory database with migrations applied
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db)
}

// createTestTask inserts a task at the end of status and returns its id
func createTestTask(t *testing.T, repo *Repository, id string, status models.Status) string {
	t.Helper()
	_, err := repo.CreateTask(context.Background(), &models.Task{
		ID:       id,
		Title:    "Task " + id,
		Status:   status,
		Priority: models.PriorityMedium,
	})
	require.NoError(t, err)
	return id
}

// columnIDs returns the ids of a column in stored order
func columnIDs(t *testing.T, repo *Repository, status models.Status) []string {
	t.Helper()
	tasks, err := repo.ListTasksByStatus(context.Background(), status)
	require.NoError(t, err)
	ids := make([]string, 0, len(tasks))
	for i, task := range tasks {
		require.Equal(t, i, task.Position, "position gap in %s", status)
		ids = append(ids, task.ID)
	}
	return ids
}
