// Package config holds roar-cli preferences.
//
// Preferences live in ~/.roar/cli.yaml and may be overridden by ROAR_CLI_*
// environment variables; command-line flags override both.
package config
