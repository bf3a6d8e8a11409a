package harness

import (
	"encoding/json"
	"fmt"
	"io"

	"dstring-go/internal/fn"
	"dstring-go/pkg/util"
)

// Text renders the report the way the validation program prints it: the
// build information, then one block per tier.
func (r *Report) Text() (string, error) {
	buf := util.NewStrBuf()
	defer buf.Free()

	buf.WriteLine("DString Library Validation")
	buf.WriteLine("--------------------------")
	buf.WriteLine("")
	if r.BuildInfo != "" {
		buf.WriteLine(r.BuildInfo)
		buf.WriteLine("")
	}
	tier := ""
	for _, res := range r.Results {
		if res.Tier != tier {
			if tier != "" {
				buf.WriteLine("")
			}
			tier = res.Tier
			buf.Writef("TIER %s\n", tier)
		}
		buf.Writef("\t%-40s %s (%s)\n", res.Name, fn.T(res.Passed, "PASS", "FAIL"), res.Status)
		if res.Detail != "" {
			buf.Writef("\t\t%s\n", res.Detail)
		}
	}
	buf.WriteLine("")
	buf.Writef("%d passed, %d failed in %s", r.Passed, r.Failed, r.Elapsed)
	if err := buf.Err(); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// WriteText writes Text to w followed by a newline.
func (r *Report) WriteText(w io.Writer) error {
	s, err := r.Text()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// WriteJSON writes the report to w as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
