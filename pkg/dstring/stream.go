package dstring

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"dstring-go/pkg/buffers"
)

// noDelim makes fill read until its buffer is full.
const noDelim = -1

// Stream is the buffered byte source the record readers pull from. It
// keeps read-ahead between calls, so wrap an io.Reader once and reuse the
// Stream for every read from it.
//
// NUL bytes in the input cannot be stored in a String and are skipped.
type Stream struct {
	r       *bufio.Reader
	growths int
}

// NewStream wraps r. A nil r yields a nil Stream, which the readers report
// as UnopenedFile.
func NewStream(r io.Reader) *Stream {
	if r == nil {
		return nil
	}
	return &Stream{r: bufio.NewReader(r)}
}

// NewStreamSize is NewStream with a read-ahead buffer of at least size
// bytes.
func NewStreamSize(r io.Reader, size int) *Stream {
	if r == nil {
		return nil
	}
	return &Stream{r: bufio.NewReaderSize(r, size)}
}

// GrowthSteps reports how many times a record read through st had to
// enlarge its scratch buffer.
func (st *Stream) GrowthSteps() int {
	if st == nil {
		return 0
	}
	return st.growths
}

// fill copies bytes into p until p is full, delim has been stored, or the
// underlying reader fails. The delimiter is kept at the end of what was
// written.
func (st *Stream) fill(p []byte, delim int) (int, error) {
	n := 0
	for n < len(p) {
		c, err := st.r.ReadByte()
		if err != nil {
			return n, err
		}
		if c == 0 {
			continue
		}
		p[n] = c
		n++
		if int(c) == delim {
			break
		}
	}
	return n, nil
}

// streamErr classifies a read failure: a clean end of input is EOF,
// anything else is FileError wrapping the cause.
func streamErr(err error) error {
	if errors.Is(err, io.EOF) {
		return EOF
	}
	return fmt.Errorf("%w: %w", FileError, err)
}

// ReadLine reads one '\n'-terminated line from st into s, replacing its
// content, and returns the bytes read, newline included.
//
// If the stream ends before any byte is read, s is left as it was and EOF
// (or FileError for a read fault) is returned. A final line without a
// newline is kept in s and returned together with the same error, so the
// caller sees both the data and why the read stopped. If growth fails, s
// is left as it was and NoMem is returned.
func (s *String) ReadLine(st *Stream) (int, error) {
	return s.readRecord(st, '\n', false)
}

// ReadDelim is ReadLine with delim as the record terminator.
func (s *String) ReadDelim(st *Stream, delim byte) (int, error) {
	if delim == 0 {
		if !s.live() {
			return 0, Uninitialized
		}
		return 0, InvalidArgument
	}
	return s.readRecord(st, int(delim), false)
}

// AppendLine is ReadLine appending to the existing content instead of
// replacing it. On any failure the existing content is left untouched.
func (s *String) AppendLine(st *Stream) (int, error) {
	return s.readRecord(st, '\n', true)
}

// AppendDelim is AppendLine with delim as the record terminator.
func (s *String) AppendDelim(st *Stream, delim byte) (int, error) {
	if delim == 0 {
		if !s.live() {
			return 0, Uninitialized
		}
		return 0, InvalidArgument
	}
	return s.readRecord(st, int(delim), true)
}

// readRecord accumulates one record in a scratch buffer the size of the
// destination's capacity, doubling it whenever it fills up before the
// delimiter shows, and only then merges it into s.
func (s *String) readRecord(st *Stream, delim int, appending bool) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if st == nil {
		return 0, UnopenedFile
	}

	var scratch growbuf
	if err := scratch.init(s.buf.alloc, len(s.buf.data)); err != nil {
		return 0, err
	}

	pos := 0
	var readErr error
	for {
		// always slice from the current storage, which growth may move
		end := len(scratch.data) - 1
		if pos < end {
			n, err := st.fill(scratch.data[pos:end], delim)
			pos += n
			if n > 0 && int(scratch.data[pos-1]) == delim {
				break
			}
			if err != nil {
				if pos == 0 {
					scratch.release()
					return 0, streamErr(err)
				}
				readErr = streamErr(err)
				break
			}
			if pos < end {
				continue
			}
		}

		c, ok := addSize(len(scratch.data), len(scratch.data))
		if !ok {
			scratch.release()
			return 0, NoMem
		}
		if err := scratch.resize(c); err != nil {
			scratch.release()
			return 0, err
		}
		st.growths++
	}

	if appending {
		_, err := s.appendBytes(scratch.data[:pos])
		scratch.release()
		if err != nil {
			return 0, err
		}
		return pos, readErr
	}

	scratch.data[pos] = 0
	s.buf.release()
	s.buf = scratch
	s.n = pos
	return pos, readErr
}

// ReadN reads up to n-1 bytes from st into s, replacing its content, and
// returns how many it read. Delimiters are not special. The capacity of s
// is raised once, before reading, if it cannot hold n bytes; if that
// fails nothing is read.
//
// If the stream ends before any byte is read, s keeps its content;
// otherwise whatever was read replaces it, and a short read is reported
// with EOF or FileError alongside the count.
func (s *String) ReadN(st *Stream, n int) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if st == nil {
		return 0, UnopenedFile
	}
	if n < 0 {
		return 0, InvalidArgument
	}
	if n <= 1 {
		return 0, nil
	}
	want := n - 1
	if err := s.makeRoom(want, want); err != nil {
		return 0, err
	}
	k, err := st.fill(s.buf.data[:want], noDelim)
	if k > 0 {
		s.terminate(k)
	}
	if err != nil {
		return k, streamErr(err)
	}
	return k, nil
}

// AppendN reads up to n-1 bytes from st and appends them to s. The read
// goes through a pooled scratch buffer and room in s is reserved first, so
// a failed reservation reads nothing and a failed read leaves the existing
// content as it was.
func (s *String) AppendN(st *Stream, n int) (int, error) {
	if !s.live() {
		return 0, Uninitialized
	}
	if st == nil {
		return 0, UnopenedFile
	}
	if n < 0 {
		return 0, InvalidArgument
	}
	if n <= 1 {
		return 0, nil
	}
	want := n - 1
	size, ok := addSize(s.n, want)
	if !ok {
		return 0, NoMem
	}
	if err := s.makeRoom(size, want); err != nil {
		return 0, err
	}

	tmp := buffers.Get(want)
	defer buffers.Put(tmp)
	k, err := st.fill(tmp[:want], noDelim)
	// room is already reserved, so the merge cannot fail
	if _, aerr := s.appendBytes(tmp[:k]); aerr != nil {
		return 0, aerr
	}
	if err != nil {
		return k, streamErr(err)
	}
	return k, nil
}
