package column

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns with their task counts",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	columns, err := cliInstance.App.ColumnService.ListColumns(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, col := range columns {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), col.Status); err != nil {
				return err
			}
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success": true,
			"columns": columns,
		})
	}

	for _, col := range columns {
		formatter.Printf("  %-12s %-16s %d tasks\n", col.Status, col.Title, col.Len())
	}
	return nil
}
