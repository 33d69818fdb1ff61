// Package repl provides the interactive mode of roar-cli.
//
//   - repl.go: read a line, split it into arguments, send it, print the reply
//   - completer.go: command name lookup for help and hints
//   - history.go: command history persisted between sessions
package repl
