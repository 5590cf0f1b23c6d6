package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Lavr5000/KanbanBoard-sub003/cmd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/cli"
)

func main() {
	err := cmd.Execute()

	// Command failures have already been reported by the command itself
	var exitErr *cli.ExitCodeError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
