package command

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/roar-go/internal/infra/buildinfo"
)

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print build information",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print as JSON"},
		},
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()
			if c.Bool("json") {
				return json.NewEncoder(c.App.Writer).Encode(info)
			}
			fmt.Fprintf(c.App.Writer, "roar-cli %s\n", buildinfo.String())
			return nil
		},
	}
}
