package config

import (
	"time"

	"github.com/yndnr/roar-go/internal/cli/connection"
)

// CLIConfig is the configuration for roar-cli.
type CLIConfig struct {
	Server  string        `koanf:"server"`
	Timeout time.Duration `koanf:"timeout"`
	Output  string        `koanf:"output"` // raw, json
	NoColor bool          `koanf:"nocolor"`
	History string        `koanf:"history"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:  connection.DefaultAddress,
		Timeout: connection.DefaultTimeout,
		Output:  "raw",
		History: DefaultHistoryPath(),
	}
}
