package transform

import (
	"errors"
	"fmt"
	"io"
)

// Pipeline stacks codecs. Writers encode with codecs 0..N in turn, so
// readers undo them from N back to 0.
type Pipeline struct {
	codecs []Codec
}

// NewPipeline creates a pipeline over the given codecs. It requires at
// least one; use NewNoOpCodec() for an explicitly empty pipeline.
func NewPipeline(codecs ...Codec) (*Pipeline, error) {
	if len(codecs) == 0 {
		return nil, errors.New("transform: pipeline requires at least one codec; use NewNoOpCodec() for an empty pipeline")
	}
	s := make([]Codec, len(codecs))
	copy(s, codecs)
	return &Pipeline{codecs: s}, nil
}

// ParsePipeline builds a pipeline from codec names, as given on a command
// line.
func ParsePipeline(names ...string) (*Pipeline, error) {
	if len(names) == 0 {
		names = []string{"none"}
	}
	codecs := make([]Codec, 0, len(names))
	for _, n := range names {
		c, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		codecs = append(codecs, c)
	}
	return NewPipeline(codecs...)
}

// Names returns the codec names in pipeline order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.codecs))
	for i, c := range p.codecs {
		names[i] = c.Name()
	}
	return names
}

// stack closes its layers in reverse order of opening, so the layer the
// caller talks to is closed, and flushed, first.
type stack struct {
	io.Reader
	io.Writer
	layers []io.Closer
}

func (s *stack) Close() error {
	var first error
	for i := len(s.layers) - 1; i >= 0; i-- {
		if err := s.layers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewReader decodes r through the pipeline in reverse order (N..0).
func (p *Pipeline) NewReader(r io.Reader) (io.ReadCloser, error) {
	s := &stack{}
	cur := r
	for i := len(p.codecs) - 1; i >= 0; i-- {
		c := p.codecs[i]
		rc, err := c.NewReader(cur)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open reader: codec %d (%s): %w", i, c.Name(), err)
		}
		s.layers = append(s.layers, rc)
		cur = rc
	}
	s.Reader = cur
	return readCloser{s}, nil
}

// NewWriter encodes into w through the pipeline in forward order (0..N).
// Close must be called to flush every layer.
func (p *Pipeline) NewWriter(w io.Writer) (io.WriteCloser, error) {
	s := &stack{}
	cur := w
	for i := len(p.codecs) - 1; i >= 0; i-- {
		c := p.codecs[i]
		wc, err := c.NewWriter(cur)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open writer: codec %d (%s): %w", i, c.Name(), err)
		}
		s.layers = append(s.layers, wc)
		cur = wc
	}
	s.Writer = cur
	return writeCloser{s}, nil
}

type readCloser struct{ s *stack }

func (r readCloser) Read(p []byte) (int, error) { return r.s.Read(p) }
func (r readCloser) Close() error               { return r.s.Close() }

type writeCloser struct{ s *stack }

func (w writeCloser) Write(p []byte) (int, error) { return w.s.Write(p) }
func (w writeCloser) Close() error                { return w.s.Close() }
