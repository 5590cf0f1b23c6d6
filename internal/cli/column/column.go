package column

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
)

// ColumnCmd returns the column parent command
func ColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage board columns",
		Long:  "The board always has the columns todo, in-progress, review and done. Their titles can be renamed.",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(RenameCmd())

	return cmd
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}
