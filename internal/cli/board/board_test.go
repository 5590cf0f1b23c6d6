package board

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/app"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/testutil"
)

func TestBoardCmd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := app.New(db, app.WithColumnTitles(map[models.Status]string{models.StatusDone: "Shipped"}))
	t1 := testutil.CreateTestTask(t, db, models.StatusTodo, "Write tests")
	t2 := testutil.CreateTestTask(t, db, models.StatusDone, "Ship it")

	run := func(args ...string) string {
		cmd := BoardCmd()
		cmd.SetContext(cli.WithApp(context.Background(), a))
		output, err := testutil.ExecuteCommand(t, cmd, args...)
		require.NoError(t, err)
		return output
	}

	t.Run("human", func(t *testing.T) {
		output := run()
		assert.Contains(t, output, "To Do (1)")
		assert.Contains(t, output, "Shipped (1)")
		assert.Contains(t, output, "Write tests")
	})

	t.Run("quiet", func(t *testing.T) {
		lines := strings.Split(strings.TrimSpace(run("--quiet")), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "todo "+t1, lines[0])
		assert.Equal(t, "in-progress", lines[1])
		assert.Equal(t, "done "+t2, lines[3])
	})

	t.Run("json", func(t *testing.T) {
		result := testutil.ParseJSON(t, run("--json"))
		columns := result["board"].(map[string]any)["columns"].([]any)
		require.Len(t, columns, 4)
		assert.Equal(t, "Shipped", columns[3].(map[string]any)["title"])
	})
}
