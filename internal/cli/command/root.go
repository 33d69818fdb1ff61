package command

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/roar-go/internal/cli/config"
	"github.com/yndnr/roar-go/internal/cli/connection"
	"github.com/yndnr/roar-go/internal/cli/output"
	"github.com/yndnr/roar-go/internal/cli/repl"
	"github.com/yndnr/roar-go/internal/infra/buildinfo"
)

const metaConfig = "cliConfig"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "roar-cli",
		Usage:     "send commands to a roar server",
		UsageText: "roar-cli [global options] [COMMAND [ARG...]]",
		Version:   buildinfo.Get().Version,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			VersionCommand(),
		},
		HideHelpCommand: true,
		Before:          loadConfig,
		Action:          run,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file",
			EnvVars: []string{"ROAR_CLI_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address (host:port)",
			EnvVars: []string{"ROAR_SERVER"},
			Value:   connection.DefaultAddress,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "timeout for one command round trip",
			Value:   connection.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: raw, json",
			Value:   string(output.FormatRaw),
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
	}
}

// GlobalFlags holds the effective settings: flags explicitly set win over
// the CLI config file.
type GlobalFlags struct {
	Server  string
	Timeout time.Duration
	Output  string
	NoColor bool
	History string
}

// ParseGlobalFlags merges the loaded config with the flags set on c.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	cfg, ok := c.App.Metadata[metaConfig].(*config.CLIConfig)
	if !ok {
		cfg = config.Default()
	}

	g := &GlobalFlags{
		Server:  cfg.Server,
		Timeout: cfg.Timeout,
		Output:  cfg.Output,
		NoColor: cfg.NoColor,
		History: cfg.History,
	}
	if c.IsSet("server") {
		g.Server = c.String("server")
	}
	if c.IsSet("timeout") {
		g.Timeout = c.Duration("timeout")
	}
	if c.IsSet("output") {
		g.Output = c.String("output")
	}
	if c.IsSet("no-color") {
		g.NoColor = c.Bool("no-color")
	}
	return g
}

func loadConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: load cli config: %v", err), 1)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaConfig] = cfg
	return nil
}

func run(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return cli.Exit("error: "+err.Error(), 2)
	}
	colorize := !flags.NoColor && !color.NoColor
	formatter := output.NewFormatter(format, colorize)
	client := connection.NewClient(flags.Server, flags.Timeout)

	if c.NArg() == 0 {
		return interactive(c, client, formatter, flags.History)
	}

	reply, err := client.Do(c.Context, c.Args().Slice()...)
	if err != nil {
		return cli.Exit("error: "+err.Error(), 1)
	}
	return formatter.Format(c.App.Writer, reply)
}

func interactive(c *cli.Context, client *connection.Client, f output.Formatter, historyFile string) error {
	h := repl.NewHistory(historyFile)
	if err := h.Load(); err != nil {
		PrintError(c, "load history: %v", err)
	}

	r := repl.New(os.Stdin, c.App.Writer, client.Addr()+"> ", client.Do, f, h)
	runErr := r.Run(c.Context)

	if err := h.Save(); err != nil {
		PrintError(c, "save history: %v", err)
	}
	return runErr
}

// PrintError prints an error message to the app's error writer.
func PrintError(c *cli.Context, format string, args ...any) {
	w := c.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}

// ExitCode extracts the exit code carried by err, 1 for other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
