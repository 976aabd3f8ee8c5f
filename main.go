package main

import (
	"os"

	"github.com/tarea-dev/tarea/cmd"
	"github.com/tarea-dev/tarea/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
