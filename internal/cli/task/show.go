package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli/styles"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long:  "Display all details of a task. The description is rendered as markdown.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	svc := cliInstance.App.TaskService
	taskID, err := cli.ResolveTaskID(ctx, svc, args[0])
	if err != nil {
		return formatter.FailWithSuggestion(err, "Use 'kanban task list' to see task IDs")
	}

	task, err := svc.GetTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return formatter.Success(task)
	}

	board, err := svc.GetBoard(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	columnTitle := board.Column(task.Status).Title

	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success": true,
			"task":    task,
			"column":  columnTitle,
		})
	}

	styles.Init(cliInstance.Config.Theme)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTask(task, columnTitle))
	return err
}

func renderTask(task *models.Task, columnTitle string) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(task.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(task.ID))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(value) + "\n")
	}
	field("Column", columnTitle)
	b.WriteString(styles.LabelStyle.Render("Priority:") + " " + styles.RenderPriority(task.Priority) + "\n")
	field("Position", fmt.Sprintf("%d", task.Position+1))
	if !task.CreatedAt.IsZero() {
		field("Created", task.CreatedAt.Format("2006-01-02 15:04"))
	}
	if !task.UpdatedAt.IsZero() {
		field("Updated", task.UpdatedAt.Format("2006-01-02 15:04"))
	}

	if desc := styles.RenderMarkdown(task.Description, styles.CardWidth-6); desc != "" {
		b.WriteString(styles.SectionStyle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(desc)
	}

	return styles.RenderCard(b.String())
}
