package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/app"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/testutil"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, app.New(db)
}

func executeCLICommand(t *testing.T, a *app.App, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	cmd.SetContext(cli.WithApp(context.Background(), a))
	return testutil.ExecuteCommand(t, cmd, args...)
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, cli.ExitCode(err))
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreateTaskCommand(t *testing.T) {
	db, a := setupCLITest(t)

	t.Run("quiet prints the id", func(t *testing.T) {
		output, err := executeCLICommand(t, a, CreateCmd(), "--title", "Test Task", "--quiet")
		require.NoError(t, err)

		id := strings.TrimSpace(output)
		assert.True(t, types.ValidTaskID(id), "expected a task id, got %q", output)
		assert.Contains(t, testutil.ColumnTaskIDs(t, db, models.StatusTodo), id)
	})

	t.Run("json output", func(t *testing.T) {
		output, err := executeCLICommand(t, a, CreateCmd(),
			"--title", "JSON Task", "--status", "In Progress", "--priority", "HIGH", "--json")
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		task := result["task"].(map[string]any)
		assert.Equal(t, "JSON Task", task["title"])
		assert.Equal(t, "in-progress", task["status"])
		assert.Equal(t, "high", task["priority"])
	})

	t.Run("human output", func(t *testing.T) {
		output, err := executeCLICommand(t, a, CreateCmd(), "--title", "Human", "--status", "review")
		require.NoError(t, err)
		assert.Contains(t, output, "Created task")
		assert.Contains(t, output, "in Review: Human")
	})
}

func TestCreateTaskCommand_Negative(t *testing.T) {
	_, a := setupCLITest(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"testing is not a column", []string{"--title", "x", "--status", "testing"}, cli.ExitValidation},
		{"unknown priority", []string{"--title", "x", "--priority", "urgent"}, cli.ExitValidation},
		{"blank title", []string{"--title", "   "}, cli.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCLICommand(t, a, CreateCmd(), append(tt.args, "--json")...)
			requireExitCode(t, err, tt.code)
		})
	}

	t.Run("missing title flag", func(t *testing.T) {
		_, err := executeCLICommand(t, a, CreateCmd())
		assert.Error(t, err)
	})
}

// ============================================================================
// LIST / SHOW
// ============================================================================

func TestListTaskCommand(t *testing.T) {
	db, a := setupCLITest(t)
	t1 := testutil.CreateTestTask(t, db, models.StatusTodo, "Task 1")
	t2 := testutil.CreateTestTask(t, db, models.StatusTodo, "Task 2")
	t3 := testutil.CreateTestTask(t, db, models.StatusDone, "Task 3")

	t.Run("human", func(t *testing.T) {
		output, err := executeCLICommand(t, a, ListCmd())
		require.NoError(t, err)
		assert.Contains(t, output, "Found 3 tasks")
		assert.Contains(t, output, types.ShortID(t1))
		assert.Contains(t, output, "Task 3")
	})

	t.Run("quiet lists ids in board order", func(t *testing.T) {
		output, err := executeCLICommand(t, a, ListCmd(), "--quiet")
		require.NoError(t, err)
		assert.Equal(t, []string{t1, t2, t3}, strings.Fields(output))
	})

	t.Run("json filtered by status", func(t *testing.T) {
		output, err := executeCLICommand(t, a, ListCmd(), "--status", "done", "--json")
		require.NoError(t, err)

		var result struct {
			Success bool           `json:"success"`
			Tasks   []*models.Task `json:"tasks"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &result))
		assert.True(t, result.Success)
		require.Len(t, result.Tasks, 1)
		assert.Equal(t, t3, result.Tasks[0].ID)
	})

	t.Run("empty column", func(t *testing.T) {
		output, err := executeCLICommand(t, a, ListCmd(), "--status", "review")
		require.NoError(t, err)
		assert.Contains(t, output, "No tasks found")
	})
}

func TestShowTaskCommand(t *testing.T) {
	db, a := setupCLITest(t)
	id := testutil.CreateTestTask(t, db, models.StatusReview, "Shown task")
	_, err := db.Exec("UPDATE tasks SET description = ? WHERE id = ?", "## Notes\n\nsome **bold** text", id)
	require.NoError(t, err)

	t.Run("short id and markdown", func(t *testing.T) {
		output, err := executeCLICommand(t, a, ShowCmd(), types.ShortID(id))
		require.NoError(t, err)
		assert.Contains(t, output, "Shown task")
		assert.Contains(t, output, "Review")
		assert.Contains(t, output, "Notes")
		assert.NotContains(t, output, "**bold**")
	})

	t.Run("json", func(t *testing.T) {
		output, err := executeCLICommand(t, a, ShowCmd(), id, "--json")
		require.NoError(t, err)
		result := testutil.ParseJSON(t, output)
		assert.Equal(t, "Review", result["column"])
		assert.Equal(t, id, result["task"].(map[string]any)["id"])
	})

	t.Run("not found", func(t *testing.T) {
		_, err := executeCLICommand(t, a, ShowCmd(), types.NewTaskID(), "--json")
		requireExitCode(t, err, cli.ExitNotFound)
	})
}

// ============================================================================
// UPDATE / DELETE
// ============================================================================

func TestUpdateTaskCommand(t *testing.T) {
	db, a := setupCLITest(t)
	id := testutil.CreateTestTask(t, db, models.StatusTodo, "Before")

	output, err := executeCLICommand(t, a, UpdateCmd(), id, "--title", "After", "--priority", "low", "--json")
	require.NoError(t, err)
	task := testutil.ParseJSON(t, output)["task"].(map[string]any)
	assert.Equal(t, "After", task["title"])
	assert.Equal(t, "low", task["priority"])

	_, err = executeCLICommand(t, a, UpdateCmd(), id)
	requireExitCode(t, err, cli.ExitUsage)

	_, err = executeCLICommand(t, a, UpdateCmd(), id, "--title", "", "--json")
	requireExitCode(t, err, cli.ExitValidation)
}

func TestDeleteTaskCommand(t *testing.T) {
	db, a := setupCLITest(t)
	keep := testutil.CreateTestTask(t, db, models.StatusTodo, "Keep")
	drop := testutil.CreateTestTask(t, db, models.StatusTodo, "Drop")

	t.Run("declined confirmation keeps the task", func(t *testing.T) {
		cmd := DeleteCmd()
		cmd.SetIn(strings.NewReader("n\n"))
		output, err := executeCLICommand(t, a, cmd, keep)
		require.NoError(t, err)
		assert.Contains(t, output, "Cancelled")
		assert.Len(t, testutil.ColumnTaskIDs(t, db, models.StatusTodo), 2)
	})

	t.Run("force", func(t *testing.T) {
		output, err := executeCLICommand(t, a, DeleteCmd(), drop, "--force")
		require.NoError(t, err)
		assert.Contains(t, output, "deleted")
		assert.Equal(t, []string{keep}, testutil.ColumnTaskIDs(t, db, models.StatusTodo))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := executeCLICommand(t, a, DeleteCmd(), drop, "--json")
		requireExitCode(t, err, cli.ExitNotFound)
	})
}

// ============================================================================
// MOVE / DROP
// ============================================================================

func TestMoveTaskCommand(t *testing.T) {
	db, a := setupCLITest(t)
	todo := testutil.CreateTestTask(t, db, models.StatusTodo, "Todo")
	r1 := testutil.CreateTestTask(t, db, models.StatusReview, "R1")
	r2 := testutil.CreateTestTask(t, db, models.StatusReview, "R2")

	t.Run("next", func(t *testing.T) {
		output, err := executeCLICommand(t, a, MoveCmd(), todo, "next", "--json")
		require.NoError(t, err)
		result := testutil.ParseJSON(t, output)
		assert.Equal(t, "To Do", result["from_column"])
		assert.Equal(t, "In Progress", result["to_column"])
	})

	t.Run("by title with anchor", func(t *testing.T) {
		_, err := executeCLICommand(t, a, MoveCmd(), todo, "Review", "--before", r2)
		require.NoError(t, err)
		assert.Equal(t, []string{r1, todo, r2}, testutil.ColumnTaskIDs(t, db, models.StatusReview))
	})

	t.Run("same column is a silent success", func(t *testing.T) {
		output, err := executeCLICommand(t, a, MoveCmd(), r1, "review")
		require.NoError(t, err)
		assert.Contains(t, output, "already in")
		assert.Equal(t, []string{r1, todo, r2}, testutil.ColumnTaskIDs(t, db, models.StatusReview))
	})

	t.Run("prev from first column", func(t *testing.T) {
		first := testutil.CreateTestTask(t, db, models.StatusTodo, "First")
		_, err := executeCLICommand(t, a, MoveCmd(), first, "prev", "--json")
		requireExitCode(t, err, cli.ExitValidation)
	})

	t.Run("anchor in another column", func(t *testing.T) {
		_, err := executeCLICommand(t, a, MoveCmd(), r1, "done", "--before", r2, "--json")
		requireExitCode(t, err, cli.ExitValidation)
		assert.Equal(t, []string{r1, todo, r2}, testutil.ColumnTaskIDs(t, db, models.StatusReview))
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := executeCLICommand(t, a, MoveCmd(), r1, "testing", "--json")
		requireExitCode(t, err, cli.ExitValidation)
	})
}

func TestDropTaskCommand(t *testing.T) {
	db, a := setupCLITest(t)
	active := testutil.CreateTestTask(t, db, models.StatusTodo, "Active")
	d1 := testutil.CreateTestTask(t, db, models.StatusDone, "D1")

	tests := []struct {
		name    string
		args    []string
		outcome string
	}{
		{"outside any column", []string{active}, "no_target"},
		{"onto itself", []string{active, active}, "self_drop"},
		{"onto a non-column id", []string{active, "testing"}, "invalid_target"},
		{"onto own column", []string{active, "todo"}, "unchanged"},
		{"onto a task", []string{active, d1}, "committed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCLICommand(t, a, DropCmd(), append(tt.args, "--quiet")...)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, strings.TrimSpace(output))
		})
	}

	assert.Equal(t, []string{active, d1}, testutil.ColumnTaskIDs(t, db, models.StatusDone))
	assert.Empty(t, testutil.ColumnTaskIDs(t, db, models.StatusTodo))

	t.Run("json resolution", func(t *testing.T) {
		output, err := executeCLICommand(t, a, DropCmd(), active, "review", "--json")
		require.NoError(t, err)
		res := testutil.ParseJSON(t, output)["resolution"].(map[string]any)
		assert.Equal(t, "committed", res["outcome"])
		assert.Equal(t, "review", res["move"].(map[string]any)["status"])
	})
}
