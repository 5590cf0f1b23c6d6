package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/launcher"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Long: `Open the interactive board. Press space to grab a task, move the drop
cursor with the navigation keys, and press space again to drop it. Esc
cancels the drag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return launcher.Launch(cmd.Context(), cfg)
		},
	}
}
