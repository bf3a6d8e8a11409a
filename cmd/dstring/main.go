package main

import (
	"fmt"
	"os"

	"dstring-go/pkg/dstring"
	"dstring-go/pkg/harness"
	"dstring-go/pkg/log"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var (
	Version   = dstring.Version
	BuildTime = "unknown"
)

// cfg is loaded once by the app's Before hook.
var cfg *harness.Config

func newApp() *cli.App {
	return &cli.App{
		Name:    "dstring",
		Usage:   "exercise the dstring library from the command line",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration `FILE` (default: dstring.yaml in the usual places)",
				EnvVars: []string{"DSTR_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Also log to stderr, at debug level",
			},
			&cli.BoolFlag{
				Name:  "no-store",
				Usage: "Do not record events in the SQLite log database",
			},
		},
		Before: setup,
		After: func(*cli.Context) error {
			return log.Close()
		},
		Commands: []*cli.Command{
			selftestCommand,
			readlineCommand,
			logsCommand,
			serveCommand,
			versionCommand,
		},
	}
}

func setup(c *cli.Context) error {
	var err error
	cfg, err = harness.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading configuration: %v", err), 1)
	}
	if c.Bool("verbose") {
		log.SetStd(os.Stderr)
		log.SetLevel(zerolog.DebugLevel)
	}
	// logs opens the database itself
	if c.Args().First() == "logs" || c.Bool("no-store") || cfg.LogDB == "" {
		return nil
	}
	if err := log.Init(cfg.LogDB); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: event store unavailable: %v\n", err)
	}
	return nil
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Print build information",
	Action: func(c *cli.Context) error {
		a, err := cfg.NewAllocator()
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		s, err := dstring.NewWith(a, 10)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer dstring.Free(&s)
		if err := dstring.BuildInfo(s); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		fmt.Fprintln(c.App.Writer, s.String())
		fmt.Fprintf(c.App.Writer, "built: %s\n", BuildTime)
		return nil
	},
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
