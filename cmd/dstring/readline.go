package main

import (
	"fmt"
	"io"
	"os"

	"dstring-go/pkg/dstring"
	"dstring-go/pkg/log"
	"dstring-go/pkg/textfmt"
	"dstring-go/pkg/transform"

	"github.com/urfave/cli/v2"
)

var readlineCommand = &cli.Command{
	Name:      "readline",
	Usage:     "Read records from files (or stdin) through a dstring",
	UsageText: "dstring readline [options] [FILE...]",
	Description: `Reads every record of the input into one growable string and prints it.
With --append the records accumulate and are printed once at the end.
'-' or no FILE reads standard input.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "delim",
			Aliases: []string{"d"},
			Usage:   "Record terminator `BYTE`, escapes such as \\t allowed (default from config)",
		},
		&cli.BoolFlag{
			Name:    "append",
			Aliases: []string{"a"},
			Usage:   "Accumulate records instead of replacing them",
		},
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"s"},
			Usage:   "Initial capacity `BYTES` of the destination (default from config)",
		},
		&cli.StringSliceFlag{
			Name:  "codec",
			Usage: fmt.Sprintf("Decode the input with codec `NAME`, repeatable, applied outermost last (one of %v)", transform.Names()),
		},
		&cli.StringFlag{
			Name:  "allocator",
			Usage: "Storage backend `KIND`: heap or mmap (default from config)",
		},
		&cli.BoolFlag{
			Name:  "upper",
			Usage: "Upper-case each record before printing",
		},
		&cli.IntFlag{
			Name:  "right",
			Usage: "Right-justify each record within `WIDTH` columns",
		},
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "Print record and growth counters to stderr",
		},
	},
	Action: readlineCmd,
}

type readStats struct {
	records int
	bytes   int
	growths int
}

func readlineCmd(c *cli.Context) error {
	rc := *cfg
	if c.IsSet("delim") {
		rc.Delimiter = c.String("delim")
	}
	if c.IsSet("size") {
		rc.DefaultSize = c.Int("size")
	}
	if c.IsSet("allocator") {
		rc.Allocator = c.String("allocator")
	}
	if err := rc.Validate(); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	delim, _ := rc.DelimiterByte()
	alloc, err := rc.NewAllocator()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	codecs := c.StringSlice("codec")
	if len(codecs) == 0 {
		codecs = []string{rc.Codec}
	}
	pipe, err := transform.ParsePipeline(codecs...)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	s, err := dstring.NewWith(alloc, rc.DefaultSize)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error allocating destination: %v", err), 1)
	}
	defer dstring.Free(&s)

	files := c.Args().Slice()
	if len(files) == 0 {
		files = []string{"-"}
	}
	logger := log.With("readline")
	var st readStats
	for _, name := range files {
		if err := readFile(c, name, pipe, s, delim, &st); err != nil {
			logger.Error().Err(err).Str("file", name).Msg("read failed")
			return cli.Exit(fmt.Sprintf("Error reading %s: %v", name, err), 1)
		}
	}
	if c.Bool("append") {
		if err := emit(c, s); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
	}
	logger.Info().Int("records", st.records).Int("bytes", st.bytes).
		Int("growth_steps", st.growths).Strs("codecs", pipe.Names()).Msg("read done")
	if c.Bool("stats") {
		capacity, _ := s.Cap()
		fmt.Fprintf(c.App.ErrWriter, "records: %d\nbytes: %d\ngrowth steps: %d\ncapacity: %d\n",
			st.records, st.bytes, st.growths, capacity)
	}
	return nil
}

func readFile(c *cli.Context, name string, pipe *transform.Pipeline, s *dstring.String, delim byte, st *readStats) error {
	var in io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	r, err := pipe.NewReader(in)
	if err != nil {
		return err
	}
	defer r.Close()

	stream := dstring.NewStream(r)
	appending := c.Bool("append")
	for {
		var n int
		if appending {
			n, err = s.AppendDelim(stream, delim)
		} else {
			n, err = s.ReadDelim(stream, delim)
		}
		if n > 0 {
			st.records++
			st.bytes += n
			if !appending {
				if err := emit(c, s); err != nil {
					return err
				}
			}
		}
		if err != nil {
			st.growths += stream.GrowthSteps()
			if dstring.StatusOf(err) == dstring.EOF {
				return nil
			}
			return err
		}
	}
}

// emit prints s after the requested formatting, which may change s.
func emit(c *cli.Context, s *dstring.String) error {
	if c.Bool("upper") {
		if n, _ := s.Len(); n > 0 {
			if err := textfmt.ToUpper(s, 0); err != nil {
				return err
			}
		}
	}
	if w := c.Int("right"); w > 0 {
		if err := textfmt.Right(s, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(c.App.Writer, s.String())
	return err
}
