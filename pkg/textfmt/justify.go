package textfmt

import (
	"strings"

	"dstring-go/pkg/dstring"
)

// Alignment selects where justified text sits inside its width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Center centers the text of every line of s within width columns,
// padding with spaces. Leading and trailing whitespace of each line is
// dropped first. A line that is already wider than width is kept as is.
func Center(s *dstring.String, width int) error {
	return Justify(s, width, AlignCenter)
}

// Right right-justifies every line of s within width columns.
func Right(s *dstring.String, width int) error {
	return Justify(s, width, AlignRight)
}

// Left left-justifies every line of s within width columns, filling the
// right side with spaces.
func Left(s *dstring.String, width int) error {
	return Justify(s, width, AlignLeft)
}

// Justify lays out every line of s within width columns. The result is
// built aside and copied over s in one step, so s is untouched on failure.
func Justify(s *dstring.String, width int, align Alignment) error {
	if !s.Live() {
		return dstring.Uninitialized
	}
	if width < 0 {
		return dstring.InvalidArgument
	}

	out, err := dstring.NewWith(s.Allocator(), length(s)+1)
	if err != nil {
		return err
	}
	defer dstring.Free(&out)

	for i, line := range strings.Split(s.String(), "\n") {
		if i > 0 {
			if err := out.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := out.ConcatString(justifyLine(line, width, align)); err != nil {
			return err
		}
	}
	_, err = s.Copy(out)
	return err
}

func justifyLine(line string, width int, align Alignment) string {
	text := strings.TrimSpace(line)
	if text == "" || len(text) > width {
		return line
	}
	gap := width - len(text)
	var left int
	switch align {
	case AlignCenter:
		left = gap / 2
	case AlignRight:
		left = gap
	}
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}
