// Package command defines the roar-cli application on urfave/cli/v2.
//
// Invoked with a command, roar-cli sends it, prints the reply and exits.
// Invoked without one it starts the interactive mode (internal/cli/repl).
package command
