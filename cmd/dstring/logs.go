package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dstring-go/pkg/appdir"
	"dstring-go/pkg/log"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// timeFormats are the absolute layouts parseTimeSpec accepts, most
// specific first.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimeSpec parses spec as a duration back from now ("1h", "30m", "2d")
// or as an absolute timestamp in local time.
func parseTimeSpec(spec string) (time.Time, error) {
	if d, err := parseDuration(spec); err == nil {
		return time.Now().Add(-d), nil
	}
	for _, layout := range timeFormats {
		if ts, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification '%s': use a duration (e.g. '1h', '2d') or a timestamp (e.g. '2023-10-27T15:04:05Z')", spec)
}

// parseDuration extends time.ParseDuration with whole days and weeks.
func parseDuration(spec string) (time.Duration, error) {
	for suffix, unit := range map[string]time.Duration{"d": 24 * time.Hour, "w": 7 * 24 * time.Hour} {
		if n, ok := strings.CutSuffix(spec, suffix); ok {
			var v int
			if _, err := fmt.Sscanf(n, "%d", &v); err != nil || v < 0 || fmt.Sprint(v) != n {
				return 0, fmt.Errorf("bad duration %q", spec)
			}
			return time.Duration(v) * unit, nil
		}
	}
	return time.ParseDuration(spec)
}

var logsCommand = &cli.Command{
	Name:      "logs",
	Usage:     "Retrieve stored events from the log database",
	UsageText: "dstring logs [--last|--since] [options]",
	Description: `Reads the SQLite event store written by the other commands.
--last (the default) prints the most recent entries; --since prints the
entries recorded after a time spec, optionally filtered by level.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dbfile",
			Aliases: []string{"f"},
			Usage:   "SQLite log database `PATH` (default from config)",
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "Print entries in console format instead of raw JSON",
		},
		&cli.BoolFlag{
			Name:  "last",
			Usage: "Mode: retrieve the most recent entries (default)",
		},
		&cli.BoolFlag{
			Name:  "since",
			Usage: "Mode: retrieve entries since --start",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of entries for --last `NUMBER`",
			Value:   log.DefaultLimit,
		},
		&cli.StringFlag{
			Name:    "start",
			Aliases: []string{"s"},
			Usage:   "Start `TIME_SPEC` for --since (e.g. '1h', '2023-10-27T10:00:00Z')",
		},
		&cli.StringFlag{
			Name:  "level",
			Usage: "Only entries at `LEVEL` for --since (debug, info, warn, error)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Max entries for --since `NUMBER`",
			Value:   1000,
		},
	},
	Action: logsCmd,
}

// resolveDB mirrors where log.Init places a relative database file.
func resolveDB(dbFile string) (string, error) {
	if filepath.IsAbs(dbFile) {
		return dbFile, nil
	}
	dir, err := appdir.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFile), nil
}

func logsCmd(c *cli.Context) error {
	isLast, isSince := c.Bool("last"), c.Bool("since")
	if isLast && isSince {
		return cli.Exit("Error: only one of --last and --since can be given.", 1)
	}

	dbFile := c.String("dbfile")
	if dbFile == "" {
		dbFile = cfg.LogDB
	}
	if dbFile == "" {
		return cli.Exit("Error: no log database configured, use --dbfile.", 1)
	}
	path, err := resolveDB(dbFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cli.Exit(fmt.Sprintf("Error: database file not found at '%s'", path), 1)
	}
	if err := log.Init(path); err != nil {
		return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
	}

	var results []log.Entry
	if isSince {
		if !c.IsSet("start") {
			return cli.Exit("Error: --start (-s) is required for --since mode.", 1)
		}
		start, err := parseTimeSpec(c.String("start"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error parsing start time: %v", err), 1)
		}
		level := strings.ToLower(c.String("level"))
		if level != "" {
			if _, err := zerolog.ParseLevel(level); err != nil {
				return cli.Exit(fmt.Sprintf("Error: unknown level '%s'", level), 1)
			}
		}
		results, err = log.GetLogsSince(start, level, c.Int("limit"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", err), 1)
		}
	} else {
		if c.IsSet("start") || c.IsSet("level") {
			fmt.Fprintln(c.App.ErrWriter, "Warning: --start and --level are ignored in --last mode.")
		}
		count := c.Int("count")
		if count <= 0 {
			return cli.Exit("Error: --count (-n) must be a positive number.", 1)
		}
		results, err = log.GetLastNLogs(count)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", err), 1)
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(c.App.ErrWriter, "No log entries found matching the criteria.")
		return nil
	}
	if err := printEntries(c.App.Writer, results, c.Bool("pretty")); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	return nil
}

func printEntries(w io.Writer, entries []log.Entry, pretty bool) error {
	if !pretty {
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, e.Data); err != nil {
				return err
			}
		}
		return nil
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	for _, e := range entries {
		if _, err := cw.Write([]byte(e.Data)); err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
	}
	return nil
}
