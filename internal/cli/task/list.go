package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in board order, optionally limited to one column.

Examples:
  kanban task list
  kanban task list --status "in progress"
  kanban task list --quiet
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("status", "", "Only list tasks in this column")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	var status models.Status
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		parsed, err := cli.ParseStatus(raw)
		if err != nil {
			return formatter.FailWithSuggestion(err, "Available columns: "+cli.FormatAvailableColumns())
		}
		status = parsed
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, status)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		out := cmd.OutOrStdout()
		for _, t := range tasks {
			if _, err := fmt.Fprintln(out, t.ID); err != nil {
				return err
			}
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success": true,
			"tasks":   tasks,
		})
	}

	if len(tasks) == 0 {
		formatter.Printf("No tasks found\n")
		return nil
	}

	formatter.Printf("Found %d tasks:\n", len(tasks))
	for _, t := range tasks {
		formatter.Printf("  %s  %-12s %-6s  %s\n", types.ShortID(t.ID), t.Status, t.Priority, t.Title)
	}
	return nil
}
