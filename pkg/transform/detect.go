package transform

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

type autoCodec struct{}

// NewAutoCodec returns a codec whose reader sniffs the stream's magic
// bytes and decodes gzip or zstd accordingly, passing anything else
// through. Its writer does not encode.
func NewAutoCodec() Codec { return autoCodec{} }

func (autoCodec) Name() string { return "auto" }

func (autoCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	c, br, err := Detect(r)
	if err != nil {
		return nil, err
	}
	return c.NewReader(br)
}

func (autoCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// Detect peeks at the start of r and returns the codec that decodes it
// together with a reader that still yields every byte of r.
func Detect(r io.Reader) (Codec, io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("transform: sniffing stream: %w", err)
	}
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return NewZstdCodec(DefaultZstdLevel), br, nil
	case bytes.HasPrefix(head, gzipMagic):
		return NewGzipCodec(DefaultGzipLevel), br, nil
	}
	return NewNoOpCodec(), br, nil
}
