package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/dnd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// DropCmd returns the task drop subcommand
func DropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop <id> [over]",
		Short: "Replay a drag-and-drop gesture",
		Long: `Drop a task onto a column or another task, exactly as a board UI would.

<over> is a column status (the task goes to the bottom of that column) or a
task ID (the task takes that task's slot). Leaving it out is a drop outside
any column. Drops that do not warrant a move are reported, not failed.

Examples:
  kanban task drop 3f2a9c1e done
  kanban task drop 3f2a9c1e 9b7d0a44
  kanban task drop 3f2a9c1e --json
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDrop,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runDrop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	svc := cliInstance.App.TaskService
	activeID, err := cli.ResolveTaskID(ctx, svc, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	ev := dnd.DragEvent{ActiveID: activeID}
	if len(args) == 2 {
		ev.OverID, ev.Over = dropTarget(cmd, svc, args[1])
	}

	res, err := svc.DropTask(ctx, ev)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Outcome)
		return err
	}
	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success":    true,
			"resolution": res,
		})
	}

	if res.Committed() {
		formatter.Printf("Task %s dropped into %s\n", types.ShortID(activeID), res.Move.Status)
	} else {
		formatter.Printf("No move: %s\n", res.Outcome)
	}
	return nil
}

// dropTarget builds the droppable id and metadata for <over>. A target that
// is neither a column nor a known task is passed through bare so the
// resolver can reject it.
func dropTarget(cmd *cobra.Command, svc taskservice.Service, over string) (string, *dnd.TargetData) {
	ctx := cmd.Context()

	if status, err := models.ParseStatus(over); err == nil {
		return string(status), dnd.ColumnTarget(status)
	}

	if id, err := cli.ResolveTaskID(ctx, svc, over); err == nil {
		if task, err := svc.GetTask(ctx, id); err == nil {
			return task.ID, dnd.TaskTarget(task)
		}
		return id, nil
	}

	return over, nil
}
