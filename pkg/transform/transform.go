// Package transform decodes and encodes the byte streams fed to the
// dstring record readers. A Codec wraps a reader or writer; a Pipeline
// stacks several of them.
package transform

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUnknownCodec is returned by Lookup for a name it does not know.
var ErrUnknownCodec = errors.New("transform: unknown codec")

// Codec turns an encoded stream into plain bytes and back.
type Codec interface {
	Name() string
	NewReader(r io.Reader) (io.ReadCloser, error)
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

type noOpCodec struct{}

// NewNoOpCodec returns the codec that passes bytes through unchanged.
func NewNoOpCodec() Codec { return noOpCodec{} }

func (noOpCodec) Name() string { return "none" }

func (noOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }

func (noOpCodec) NewWriter(w io.Writer) (io.WriteCloser, error) { return nopWriteCloser{w}, nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

var registry = map[string]func() (Codec, error){
	"none": func() (Codec, error) { return NewNoOpCodec(), nil },
	"gzip": func() (Codec, error) { return NewGzipCodec(DefaultGzipLevel), nil },
	"zstd": func() (Codec, error) { return NewZstdCodec(DefaultZstdLevel), nil },
	"auto": func() (Codec, error) { return NewAutoCodec(), nil },
}

// Lookup returns the codec registered under name: none, gzip, zstd or
// auto. The empty name means none.
func Lookup(name string) (Codec, error) {
	if name == "" {
		name = "none"
	}
	mk, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownCodec, name, strings.Join(Names(), ", "))
	}
	return mk()
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
