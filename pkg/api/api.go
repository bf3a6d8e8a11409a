// Package api serves the dstring record reader and replacer over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dstring-go/pkg/dstring"
	"dstring-go/pkg/harness"
	"dstring-go/pkg/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Server is the HTTP front end. Every request works on strings drawn from
// the same allocator, so a budget set through max_alloc is shared.
type Server struct {
	Api   *echo.Echo
	cfg   *harness.Config
	alloc dstring.Allocator
	delim byte
	log   zerolog.Logger
}

// NewServer builds the server and registers its routes.
func NewServer(cfg *harness.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := cfg.NewAllocator()
	if err != nil {
		return nil, err
	}
	d, _ := cfg.DelimiterByte()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	s := &Server{Api: e, cfg: cfg, alloc: a, delim: d, log: log.With("api")}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.log.Info()
			if v.Error != nil {
				ev = s.log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).
				Dur("latency", v.Latency).Msg("request")
			return nil
		},
	}))

	v1 := e.Group("/v1")
	v1.POST("/lines", s.PostLines)
	v1.POST("/replace", s.PostReplace)
	v1.GET("/selftest", s.GetSelfTest)
	return s, nil
}

// Allocator returns the allocator shared by all requests.
func (s *Server) Allocator() dstring.Allocator { return s.alloc }

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.APIListenAddr).Msg("listening")
		errc <- s.Api.Start(s.cfg.APIListenAddr)
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Api.Shutdown(shutdown); err != nil {
		return err
	}
	return nil
}

// httpError maps a library failure onto an HTTP status.
func httpError(err error) *echo.HTTPError {
	switch dstring.StatusOf(err) {
	case dstring.NoMem:
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	case dstring.InvalidArgument, dstring.InvalidBufLen, dstring.NullCPtr:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case dstring.FileError:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
