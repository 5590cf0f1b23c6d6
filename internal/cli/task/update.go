package task

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long: `Update a task's title, description or priority. Only the flags you
pass are changed. Use 'kanban task move' to change its column.

Examples:
  kanban task update 3f2a9c1e --title="New title"
  kanban task update 3f2a9c1e --priority=high --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (markdown)")
	cmd.Flags().String("priority", "", "New priority: low, medium, high")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	req := taskservice.UpdateTaskRequest{}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		req.Title = &title
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}
	if cmd.Flags().Changed("priority") {
		raw, _ := cmd.Flags().GetString("priority")
		priority := models.Priority(strings.ToLower(raw))
		req.Priority = &priority
	}

	if req.Title == nil && req.Description == nil && req.Priority == nil {
		_ = formatter.ErrorWithSuggestion("NO_UPDATES",
			"no fields to update",
			"Pass at least one of --title, --description, --priority")
		return &cli.ExitCodeError{Code: cli.ExitUsage, Err: errors.New("no fields to update")}
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	req.TaskID, err = cli.ResolveTaskID(ctx, cliInstance.App.TaskService, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	task, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return formatter.Success(task)
	}
	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success": true,
			"task":    task,
		})
	}

	formatter.Printf("Task %s updated\n", types.ShortID(task.ID))
	return nil
}
