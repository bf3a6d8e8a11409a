package transform

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// DefaultGzipLevel is the level Lookup("gzip") encodes with.
const DefaultGzipLevel = gzip.DefaultCompression

type gzipCodec struct {
	level int
}

// NewGzipCodec returns a gzip codec writing at the given compression level.
func NewGzipCodec(level int) Codec { return &gzipCodec{level: level} }

func (g *gzipCodec) Name() string { return "gzip" }

func (g *gzipCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: failed to create reader: %w", err)
	}
	return gz, nil
}

func (g *gzipCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	gz, err := gzip.NewWriterLevel(w, g.level)
	if err != nil {
		return nil, fmt.Errorf("gzip: failed to create writer: %w", err)
	}
	return gz, nil
}
