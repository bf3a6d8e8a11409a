package transform

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// DefaultZstdLevel is the level Lookup("zstd") encodes with.
const DefaultZstdLevel = zstd.SpeedDefault

type zstdCodec struct {
	level zstd.EncoderLevel
}

// NewZstdCodec returns a Zstandard codec. Provide a level like
// zstd.SpeedFastest or zstd.SpeedBetterCompression.
func NewZstdCodec(level zstd.EncoderLevel) Codec { return &zstdCodec{level: level} }

func (z *zstdCodec) Name() string { return "zstd" }

func (z *zstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	// a single goroutine is plenty for a line reader
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to create decoder: %w", err)
	}
	return dec.IOReadCloser(), nil
}

func (z *zstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(z.level))
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to create encoder: %w", err)
	}
	return enc, nil
}
