// Package output renders RESP replies for roar-cli.
//
//   - formatter.go: Formatter interface and factory
//   - raw.go: redis-cli style text, colored with fatih/color
//   - json.go: JSON output for scripting
package output
