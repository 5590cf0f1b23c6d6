package task

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task by ID (requires confirmation unless --force, --json or --quiet).",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	force, _ := cmd.Flags().GetBool("force")

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

	// Get task details for confirmation
	task, err := svc.GetTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	if !force && !formatter.Quiet && !formatter.JSON {
		formatter.Printf("Delete task %s: '%s'? (y/N): ", types.ShortID(task.ID), task.Title)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			formatter.Printf("Cancelled\n")
			return nil
		}
	}

	if err := svc.DeleteTask(ctx, taskID); err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success": true,
			"task_id": taskID,
		})
	}

	formatter.Printf("Task %s deleted\n", types.ShortID(taskID))
	return nil
}
