package column

import (
	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
)

// RenameCmd returns the column rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <status> <title>",
		Short: "Rename a column",
		Long: `Change the title a column is displayed with. The status itself never changes.

Examples:
  kanban column rename todo Backlog
  kanban column rename "in progress" Doing
`,
		Args: cobra.ExactArgs(2),
		RunE: runRename,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	status, err := cli.ParseStatus(args[0])
	if err != nil {
		return formatter.FailWithSuggestion(err, "Available columns: "+cli.FormatAvailableColumns())
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	if err := cliInstance.App.ColumnService.RenameColumn(ctx, status, args[1]); err != nil {
		return formatter.Fail(err)
	}

	col, err := cliInstance.App.ColumnService.GetColumn(ctx, status)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success": true,
			"column":  col,
		})
	}

	formatter.Printf("Column %s renamed to '%s'\n", status, col.Title)
	return nil
}
