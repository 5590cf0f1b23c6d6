package setup

import (
	"github.com/spf13/cobra"
)

// SetupCmd returns the setup command
func SetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Prepare kanban on this machine",
		Long:  `Write the files kanban reads at startup.`,
	}

	cmd.AddCommand(ConfigCmd())

	return cmd
}
