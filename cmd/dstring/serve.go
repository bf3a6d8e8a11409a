package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dstring-go/pkg/api"
	"dstring-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve the record reader and replacer over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "listen",
			Usage: "Listen `ADDR` (default from config)",
		},
	},
	Action: serveCmd,
}

func serveCmd(c *cli.Context) error {
	sc := *cfg
	if c.IsSet("listen") {
		sc.APIListenAddr = c.String("listen")
	}
	srv, err := api.NewServer(&sc)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(c.App.Writer, "dstring API listening on %s\n", sc.APIListenAddr)
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Str("component", "serve").Msg("server stopped")
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	log.Info().Str("component", "serve").Msg("shutdown complete")
	return nil
}
