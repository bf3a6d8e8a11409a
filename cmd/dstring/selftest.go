package main

import (
	"fmt"

	"dstring-go/pkg/harness"

	"github.com/urfave/cli/v2"
)

var selftestCommand = &cli.Command{
	Name:      "selftest",
	Usage:     "Run the library validation checks",
	UsageText: "dstring selftest [--tier NAME]... [--json]",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "tier",
			Aliases: []string{"t"},
			Usage:   fmt.Sprintf("Only run the given tier `NAME` (one of %v)", harness.Tiers),
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the report as JSON",
		},
	},
	Action: selftestCmd,
}

func selftestCmd(c *cli.Context) error {
	opts, err := harness.OptionsFromConfig(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	opts.Tiers = c.StringSlice("tier")

	rep, err := harness.Run(c.Context, opts)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Self test interrupted: %v", err), 2)
	}
	if c.Bool("json") {
		err = rep.WriteJSON(c.App.Writer)
	} else {
		err = rep.WriteText(c.App.Writer)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error writing report: %v", err), 1)
	}
	if !rep.OK() {
		return cli.Exit("", 1)
	}
	return nil
}
