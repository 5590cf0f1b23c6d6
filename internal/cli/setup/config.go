package setup

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
)

// ErrConfigExists is returned when init would overwrite an existing file
var ErrConfigExists = errors.New("config file already exists")

// ConfigCmd returns the setup config subcommand
func ConfigCmd() *cobra.Command {
	var checkFlag bool
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the default config file",
		Long: `Write a config file holding every default, ready to edit.

The file goes to $KANBAN_CONFIG when set, otherwise to
$XDG_CONFIG_HOME/kanban/config.yaml or ~/.config/kanban/config.yaml.

Examples:
  # Write the defaults
  kanban setup config

  # Show where the config lives and whether it exists
  kanban setup config --check

  # Replace an existing file with the defaults
  kanban setup config --force
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.FormatterFromFlags(cmd)
			if checkFlag {
				return CheckConfig(formatter)
			}
			return WriteConfig(formatter, forceFlag)
		},
	}

	cmd.Flags().BoolVar(&checkFlag, "check", false, "Report the config path and whether it exists")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")
	cli.AddOutputFlags(cmd)

	return cmd
}

// WriteConfig saves the default config to config.Path()
func WriteConfig(formatter *cli.OutputFormatter, force bool) error {
	path, err := config.Path()
	if err != nil {
		return formatter.Fail(err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		_ = formatter.ErrorWithSuggestion("CONFIG_EXISTS",
			fmt.Sprintf("%s: %s", ErrConfigExists, path),
			"Pass --force to replace it with the defaults")
		return &cli.ExitCodeError{Code: cli.ExitUsage, Err: ErrConfigExists}
	}

	cfg := config.Default()
	if err := cfg.Save(); err != nil {
		return formatter.Fail(fmt.Errorf("write config: %w", err))
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Encode(map[string]any{
			"success": true,
			"path":    path,
		})
	}

	formatter.Printf("✓ Config written\n")
	formatter.Printf("  Path: %s\n", path)
	formatter.Printf("  Data: %s\n", cfg.DataDir)
	return nil
}

// CheckConfig reports where the config lives and whether it is valid
func CheckConfig(formatter *cli.OutputFormatter) error {
	path, err := config.Path()
	if err != nil {
		return formatter.Fail(err)
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil

	var loadErr error
	if exists {
		_, loadErr = config.LoadFrom(path)
	}

	if formatter.JSON {
		result := map[string]any{
			"success": loadErr == nil,
			"path":    path,
			"exists":  exists,
		}
		if loadErr != nil {
			result["error"] = loadErr.Error()
		}
		if err := formatter.Encode(result); err != nil {
			return err
		}
	} else if !formatter.Quiet {
		switch {
		case !exists:
			formatter.Printf("○ No config file at %s (defaults in use)\n", path)
		case loadErr != nil:
			formatter.Printf("✗ Config at %s is invalid: %v\n", path, loadErr)
		default:
			formatter.Printf("✓ Config at %s\n", path)
		}
	}

	if loadErr != nil {
		return &cli.ExitCodeError{Code: cli.ExitDataErr, Err: loadErr}
	}
	return nil
}
