// Package board implements `kanban board`, a one-shot render of every column.
package board

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli/styles"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the board",
		Long:  "Print every column side by side with its tasks in order.",
		Args:  cobra.NoArgs,
		RunE:  runBoard,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	board, err := cliInstance.App.TaskService.GetBoard(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		// one line per column: status followed by its task ids
		for _, col := range board.Columns() {
			line := append([]string{string(col.Status)}, col.TaskIDs...)
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(line, " ")); err != nil {
				return err
			}
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success": true,
			"board":   board,
		})
	}

	styles.Init(cliInstance.Config.Theme)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), Render(board))
	return err
}

// Render lays the board out as side-by-side columns
func Render(board *models.Board) string {
	blocks := make([]string, 0, len(board.Columns()))
	for _, col := range board.Columns() {
		var b strings.Builder
		b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("%s (%d)", col.Title, col.Len())))
		for _, t := range board.TasksIn(col.Status) {
			b.WriteString("\n")
			b.WriteString(styles.SubtitleStyle.Render(types.ShortID(t.ID)))
			b.WriteString(" ")
			b.WriteString(styles.ValueStyle.Render(t.Title))
		}
		blocks = append(blocks, b.String())
	}
	return styles.RenderColumns(blocks)
}
