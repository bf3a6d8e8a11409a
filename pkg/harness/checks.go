package harness

import (
	"fmt"
	"strings"

	"dstring-go/pkg/dstring"
	"dstring-go/pkg/textfmt"
)

const sampleText = "How many lines could a hacker hack if a hacker could hack code?"

// expect records err in the slot and fails unless it carries want.
func (env *Env) expect(op string, err error, want dstring.Status) error {
	env.Slot.Set(err)
	if got := env.Slot.Status(); got != want {
		return fmt.Errorf("%s: status %q, want %q", op, got, want)
	}
	return nil
}

func (env *Env) alloc(str string) (*dstring.String, error) {
	size := env.Size
	if len(str)+1 > size {
		size = len(str) + 1
	}
	s, err := dstring.NewWith(env.Alloc, size)
	if err := env.expect("alloc", err, dstring.Success); err != nil {
		return nil, err
	}
	if _, err := s.SetString(str); err != nil {
		dstring.Free(&s)
		return nil, env.expect("set", err, dstring.Success)
	}
	return s, nil
}

func content(op string, s *dstring.String, want string) error {
	if got := s.String(); got != want {
		return fmt.Errorf("%s: content %q, want %q", op, got, want)
	}
	return nil
}

// Checks returns the full acceptance suite in run order.
func Checks() []Check {
	return []Check{
		{TierAccessors, "view of uninitialized string", checkViewUninitialized},
		{TierAccessors, "view of initialized string", checkViewInitialized},
		{TierAccessors, "capacity of uninitialized string", checkCapUninitialized},
		{TierAccessors, "empty versus uninitialized length", checkZeroLength},

		{TierAllocation, "default allocation", checkAllocDefault},
		{TierAllocation, "zero allocation is the freed state", checkAllocZero},
		{TierAllocation, "negative size", checkNegativeSize},
		{TierAllocation, "grow keeps content", checkGrow},
		{TierAllocation, "shrink keeps terminator", checkShrink},
		{TierAllocation, "double free", checkDoubleFree},

		{TierMutation, "concat empty source", checkConcatEmpty},
		{TierMutation, "copy round trip", checkCopyRoundTrip},
		{TierMutation, "insert at length appends", checkInsertAtLength},
		{TierMutation, "delete at length", checkDeleteAtLength},
		{TierMutation, "replace with empty deletes", checkReplaceDelete},
		{TierMutation, "truncate and trim are idempotent", checkIdempotent},

		{TierStream, "line read grows from one byte", checkReadLineGrowth},
		{TierStream, "partial line at end of input", checkPartialLine},
		{TierStream, "end of input leaves destination", checkEOFUntouched},
		{TierStream, "unopened stream", checkUnopened},

		{TierFormat, "padding", checkPadding},
		{TierFormat, "centering", checkCenter},
	}
}

func checkViewUninitialized(env *Env) error {
	var s *dstring.String
	v, err := s.View()
	if v != nil {
		return fmt.Errorf("view returned %q", v)
	}
	return env.expect("view", err, dstring.Uninitialized)
}

func checkViewInitialized(env *Env) error {
	s, err := env.alloc(sampleText)
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	v, err := s.View()
	if err := env.expect("view", err, dstring.Success); err != nil {
		return err
	}
	if string(v) != sampleText {
		return fmt.Errorf("view: %q", v)
	}
	return nil
}

func checkCapUninitialized(env *Env) error {
	var s *dstring.String
	c, err := s.Cap()
	if c != 0 {
		return fmt.Errorf("cap returned %d", c)
	}
	return env.expect("cap", err, dstring.Uninitialized)
}

func checkZeroLength(env *Env) error {
	s, err := env.alloc("")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	n, err := s.Len()
	if err := env.expect("len of empty", err, dstring.Success); err != nil || n != 0 {
		return fmt.Errorf("len of empty: %d, %v", n, err)
	}
	var dead *dstring.String
	n, err = dead.Len()
	if n != 0 {
		return fmt.Errorf("len of uninitialized: %d", n)
	}
	return env.expect("len of uninitialized", err, dstring.Uninitialized)
}

func checkAllocDefault(env *Env) error {
	s, err := dstring.NewWith(env.Alloc, dstring.DefaultSize)
	if err := env.expect("alloc", err, dstring.Success); err != nil {
		return err
	}
	defer dstring.Free(&s)
	if c, _ := s.Cap(); c != dstring.DefaultSize {
		return fmt.Errorf("cap %d, want %d", c, dstring.DefaultSize)
	}
	return nil
}

func checkAllocZero(env *Env) error {
	s, err := dstring.NewWith(env.Alloc, 0)
	if err := env.expect("alloc 0", err, dstring.Success); err != nil {
		return err
	}
	if s != nil {
		return fmt.Errorf("alloc 0 returned a live handle")
	}
	return nil
}

func checkNegativeSize(env *Env) error {
	_, err := dstring.NewWith(env.Alloc, -1)
	return env.expect("alloc -1", err, dstring.InvalidBufLen)
}

func checkGrow(env *Env) error {
	s, err := env.alloc("abc")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	c, _ := s.Cap()
	if err := env.expect("realloc", dstring.Realloc(&s, c*4), dstring.Success); err != nil {
		return err
	}
	return content("realloc", s, "abc")
}

func checkShrink(env *Env) error {
	s, err := env.alloc(sampleText)
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	if err := env.expect("realloc", dstring.Realloc(&s, 5), dstring.Success); err != nil {
		return err
	}
	return content("realloc", s, sampleText[:4])
}

func checkDoubleFree(env *Env) error {
	s, err := env.alloc("x")
	if err != nil {
		return err
	}
	if err := env.expect("free", dstring.Free(&s), dstring.Success); err != nil {
		return err
	}
	return env.expect("second free", dstring.Free(&s), dstring.Uninitialized)
}

func checkConcatEmpty(env *Env) error {
	dest, err := env.alloc("foo")
	if err != nil {
		return err
	}
	defer dstring.Free(&dest)
	src, err := env.alloc("")
	if err != nil {
		return err
	}
	defer dstring.Free(&src)
	n, err := dest.Concat(src)
	if err := env.expect("concat", err, dstring.Success); err != nil {
		return err
	}
	if n != 0 {
		return fmt.Errorf("concat appended %d bytes", n)
	}
	return content("concat", dest, "foo")
}

func checkCopyRoundTrip(env *Env) error {
	a, err := env.alloc(sampleText)
	if err != nil {
		return err
	}
	defer dstring.Free(&a)
	b, err := env.alloc("")
	if err != nil {
		return err
	}
	defer dstring.Free(&b)
	_, err = b.Copy(a)
	if err := env.expect("copy", err, dstring.Success); err != nil {
		return err
	}
	return content("copy", b, sampleText)
}

func checkInsertAtLength(env *Env) error {
	s, err := env.alloc("abc")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	n, err := s.InsertByte(3, 'd')
	if err := env.expect("insert", err, dstring.Success); err != nil {
		return err
	}
	if n != 4 {
		return fmt.Errorf("insert returned %d", n)
	}
	return content("insert", s, "abcd")
}

func checkDeleteAtLength(env *Env) error {
	s, err := env.alloc("abc")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	_, err = s.DeleteAt(3)
	if err := env.expect("delete", err, dstring.OutOfBounds); err != nil {
		return err
	}
	return content("delete", s, "abc")
}

func checkReplaceDelete(env *Env) error {
	s, err := env.alloc("aXbXc")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	n, err := s.ReplaceString("X", "")
	if err := env.expect("replace", err, dstring.Success); err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("replace counted %d", n)
	}
	return content("replace", s, "abc")
}

func checkIdempotent(env *Env) error {
	s, err := env.alloc(sampleText)
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	_, err = s.Truncate(len(sampleText))
	if err := env.expect("truncate", err, dstring.Success); err != nil {
		return err
	}
	_, err = s.TrimLeft(0)
	if err := env.expect("trim", err, dstring.Success); err != nil {
		return err
	}
	return content("truncate and trim", s, sampleText)
}

func checkReadLineGrowth(env *Env) error {
	s, err := dstring.NewWith(env.Alloc, 1)
	if err := env.expect("alloc", err, dstring.Success); err != nil {
		return err
	}
	defer dstring.Free(&s)
	st := dstring.NewStream(strings.NewReader("hello\n"))
	n, err := s.ReadLine(st)
	if err := env.expect("readline", err, dstring.Success); err != nil {
		return err
	}
	if n != 6 || st.GrowthSteps() != 3 {
		return fmt.Errorf("readline: %d bytes after %d growth steps, want 6 after 3", n, st.GrowthSteps())
	}
	return content("readline", s, "hello\n")
}

func checkPartialLine(env *Env) error {
	s, err := env.alloc("")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	n, err := s.ReadLine(dstring.NewStream(strings.NewReader("tail")))
	if err := env.expect("readline", err, dstring.EOF); err != nil {
		return err
	}
	if n != 4 {
		return fmt.Errorf("readline returned %d", n)
	}
	return content("readline", s, "tail")
}

func checkEOFUntouched(env *Env) error {
	s, err := env.alloc("keep")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	_, err = s.AppendLine(dstring.NewStream(strings.NewReader("")))
	if err := env.expect("appendline", err, dstring.EOF); err != nil {
		return err
	}
	return content("appendline", s, "keep")
}

func checkUnopened(env *Env) error {
	s, err := env.alloc("")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	_, err = s.ReadLine(nil)
	return env.expect("readline", err, dstring.UnopenedFile)
}

func checkPadding(env *Env) error {
	s, err := env.alloc("7")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	_, err = textfmt.PadLeft(s, 2, '0')
	if err := env.expect("padl", err, dstring.Success); err != nil {
		return err
	}
	_, err = textfmt.PadRight(s, 1, '%')
	if err := env.expect("padr", err, dstring.Success); err != nil {
		return err
	}
	return content("pad", s, "007%")
}

func checkCenter(env *Env) error {
	s, err := env.alloc(" ab \ncd")
	if err != nil {
		return err
	}
	defer dstring.Free(&s)
	if err := env.expect("center", textfmt.Center(s, 4), dstring.Success); err != nil {
		return err
	}
	return content("center", s, " ab \n cd ")
}
