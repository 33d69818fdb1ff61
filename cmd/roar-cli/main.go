package main

import (
	"os"

	"github.com/yndnr/roar-go/internal/cli/command"
)

func main() {
	app := command.App()
	if err := app.Run(os.Args); err != nil {
		os.Exit(command.ExitCode(err))
	}
}
