package task

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task at the bottom of a column.

Examples:
  # Simple task in To Do
  kanban task create --title="Fix bug"

  # With description, column and priority
  kanban task create --title="Write docs" --description="## Sections" --status=review --priority=high

  # Agent-friendly output
  kanban task create --title="Deploy" --quiet
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Task description (markdown)")
	cmd.Flags().String("status", string(models.StatusTodo), "Column to create the task in")
	cmd.Flags().String("priority", string(models.DefaultPriority), "Task priority: low, medium, high")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	statusFlag, _ := cmd.Flags().GetString("status")
	priorityFlag, _ := cmd.Flags().GetString("priority")

	status, err := cli.ParseStatus(statusFlag)
	if err != nil {
		return formatter.FailWithSuggestion(err, "Available columns: "+cli.FormatAvailableColumns())
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	task, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    models.Priority(strings.ToLower(priorityFlag)),
	})
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

	formatter.Printf("Created task %s in %s: %s\n", types.ShortID(task.ID), task.Status.DefaultTitle(), task.Title)
	return nil
}
