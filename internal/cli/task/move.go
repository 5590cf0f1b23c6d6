package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <target>",
		Short: "Move a task to another column",
		Long: `Move a task to another column by direction or column name.

Without --before the task goes to the bottom of the target column. With
--before it takes that task's slot; the anchor must be in the target column.

Examples:
  # Move to next column
  kanban task move 3f2a9c1e next

  # Move to previous column
  kanban task move 3f2a9c1e prev

  # Move to specific column by status or title (case-insensitive)
  kanban task move 3f2a9c1e "In Progress"
  kanban task move 3f2a9c1e done

  # Reorder within or across columns
  kanban task move 3f2a9c1e review --before 9b7d0a44
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cmd.Flags().String("before", "", "Place the task in this task's slot")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	before, _ := cmd.Flags().GetString("before")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	svc := cliInstance.App.TaskService
	taskID, err := cli.ResolveTaskID(ctx, svc, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	current, err := svc.GetTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	target, err := targetStatus(current.Status, args[1])
	if err != nil {
		var exitErr *cli.ExitCodeError
		if errors.As(err, &exitErr) {
			_ = formatter.Error("NO_ADJACENT_COLUMN", err.Error())
			return err
		}
		return formatter.FailWithSuggestion(err, fmt.Sprintf("Task is currently in: %s\nAvailable columns: %s",
			current.Status, cli.FormatAvailableColumns()))
	}

	var anchorID string
	if before != "" {
		anchorID, err = cli.ResolveTaskID(ctx, svc, before)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	board, err := svc.GetBoard(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	fromTitle := board.Column(current.Status).Title
	toTitle := board.Column(target).Title

	// Same column without an anchor is a silent success
	moved := current
	if target != current.Status || anchorID != "" {
		moved, err = svc.MoveTask(ctx, taskID, target, anchorID)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	if formatter.Quiet {
		return formatter.Success(moved)
	}
	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success":     true,
			"task_id":     moved.ID,
			"from_column": fromTitle,
			"to_column":   toTitle,
			"position":    moved.Position,
		})
	}

	if moved == current {
		formatter.Printf("Task %s is already in '%s'\n", types.ShortID(taskID), toTitle)
	} else {
		formatter.Printf("Task %s moved to '%s' at position %d\n", types.ShortID(taskID), toTitle, moved.Position+1)
	}
	return nil
}

// targetStatus turns "next", "prev" or a column name into a status
func targetStatus(current models.Status, target string) (models.Status, error) {
	statuses := models.Statuses()
	idx := current.Index()

	switch strings.ToLower(target) {
	case "next":
		if idx < 0 || idx+1 >= len(statuses) {
			return "", &cli.ExitCodeError{Code: cli.ExitValidation,
				Err: fmt.Errorf("task is already in the last column (%s)", current)}
		}
		return statuses[idx+1], nil
	case "prev":
		if idx <= 0 {
			return "", &cli.ExitCodeError{Code: cli.ExitValidation,
				Err: fmt.Errorf("task is already in the first column (%s)", current)}
		}
		return statuses[idx-1], nil
	}
	return cli.ParseStatus(target)
}
