package api

import (
	"io"
	"net/http"
	"strconv"

	"dstring-go/pkg/dstring"
	"dstring-go/pkg/harness"
	"dstring-go/pkg/transform"

	"github.com/labstack/echo/v4"
)

// LinesResponse summarizes a record read.
type LinesResponse struct {
	Records     int  `json:"records"`
	Bytes       int  `json:"bytes"`
	Longest     int  `json:"longest"`
	GrowthSteps int  `json:"growth_steps"`
	Partial     bool `json:"partial"` // the last record had no delimiter
}

// ReplaceResponse is the outcome of a replace request.
type ReplaceResponse struct {
	Result       string `json:"result"`
	Replacements int    `json:"replacements"`
}

func (s *Server) intParam(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return n, nil
}

// body opens the request body through the codec named by the codec query
// parameter, or the configured one.
func (s *Server) body(c echo.Context) (io.ReadCloser, error) {
	name := c.QueryParam("codec")
	if name == "" {
		name = s.cfg.Codec
	}
	codec, err := transform.Lookup(name)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := codec.NewReader(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return r, nil
}

// PostLines reads the body record by record.
func (s *Server) PostLines(c echo.Context) error {
	delim := s.delim
	if d := c.QueryParam("delim"); d != "" {
		b, err := harness.ParseDelimiter(d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		delim = b
	}
	size, err := s.intParam(c, "size", s.cfg.DefaultSize)
	if err != nil {
		return err
	}
	r, err := s.body(c)
	if err != nil {
		return err
	}
	defer r.Close()

	line, err := dstring.NewWith(s.alloc, size)
	if err != nil {
		return httpError(err)
	}
	defer dstring.Free(&line)

	st := dstring.NewStream(r)
	var res LinesResponse
	for {
		n, err := line.ReadDelim(st, delim)
		if n > 0 {
			res.Records++
			res.Bytes += n
			res.Longest = max(res.Longest, n)
		}
		if err == nil {
			continue
		}
		if dstring.StatusOf(err) != dstring.EOF {
			return httpError(err)
		}
		res.Partial = n > 0
		break
	}
	res.GrowthSteps = st.GrowthSteps()
	return c.JSON(http.StatusOK, res)
}

// PostReplace replaces every occurrence of the old query parameter in the
// body with new.
func (s *Server) PostReplace(c echo.Context) error {
	olds := c.QueryParam("old")
	if olds == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "old must not be empty")
	}
	r, err := s.body(c)
	if err != nil {
		return err
	}
	defer r.Close()

	text, err := dstring.NewWith(s.alloc, s.cfg.DefaultSize)
	if err != nil {
		return httpError(err)
	}
	defer dstring.Free(&text)

	st := dstring.NewStream(r)
	for {
		_, err := text.AppendN(st, 4097)
		if err == nil {
			continue
		}
		if dstring.StatusOf(err) == dstring.EOF {
			break
		}
		return httpError(err)
	}
	n, err := text.ReplaceString(olds, c.QueryParam("new"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ReplaceResponse{Result: text.String(), Replacements: n})
}

// GetSelfTest runs the acceptance checks, optionally limited to one tier,
// against the server's allocator.
func (s *Server) GetSelfTest(c echo.Context) error {
	opts := harness.Options{Allocator: s.alloc, Size: s.cfg.DefaultSize}
	if t := c.QueryParam("tier"); t != "" {
		opts.Tiers = []string{t}
	}
	rep, err := harness.Run(c.Request().Context(), opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	code := http.StatusOK
	if !rep.OK() {
		code = http.StatusInternalServerError
	}
	return c.JSON(code, rep)
}
