// Package log is the zerolog logger shared by the dstring tools. Events go
// nowhere until SetStd or Init is called; Init stores them as JSON rows in
// an SQLite database that the retrieval helpers query.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dstring-go/pkg/appdir"

	"github.com/rs/zerolog"
)

var (
	mu        sync.RWMutex // guards pkgLogger and store
	pkgLogger = zerolog.Nop()
	store     *sqliteStore

	// ErrNotInitialized is returned by the retrieval helpers before Init.
	ErrNotInitialized = errors.New("log: logger not initialized, call log.Init() first")
	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("log: logger already initialized")
)

// timeFieldFormat is fixed width and always UTC, so stored timestamps
// compare as text in time order.
const timeFieldFormat = "2006-01-02T15:04:05.000000000Z07:00"

func utcNow() time.Time { return time.Now().UTC() }

// SetStd sends events to w in zerolog's console format. A nil w means
// stderr. It replaces any sink installed by Init for new events only.
func SetStd(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	defer mu.Unlock()
	pkgLogger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// SetLevel sets the minimum level of the package logger.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	pkgLogger = pkgLogger.Level(level)
}

// Init opens (or creates) the SQLite database at dbFile and starts storing
// events there. A relative dbFile is placed under appdir.AppDir().
func Init(dbFile string) error {
	if dbFile == "" {
		return fmt.Errorf("log: Init needs an explicit database file")
	}
	if !filepath.IsAbs(dbFile) {
		dir, err := appdir.Ensure()
		if err != nil {
			return fmt.Errorf("log: %w", err)
		}
		dbFile = filepath.Join(dir, dbFile)
	}

	mu.Lock()
	defer mu.Unlock()
	if store != nil {
		return ErrAlreadyInitialized
	}
	st, err := openStore(dbFile)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	store = st
	zerolog.TimeFieldFormat = timeFieldFormat
	zerolog.TimestampFunc = utcNow
	pkgLogger = zerolog.New(st).With().Timestamp().Logger()
	return nil
}

// Close flushes a final event to the database and closes it. Calling Close
// without Init is a no-op.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if store == nil {
		return nil
	}
	st := store
	store = nil
	pkgLogger = zerolog.Nop()

	l := zerolog.New(st).With().Timestamp().Logger()
	l.Info().Str("component", "log").Msg("closing event store")
	if err := st.close(); err != nil {
		return fmt.Errorf("log: closing event store: %w", err)
	}
	return nil
}

func logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := pkgLogger
	return &l
}

// With returns a child logger tagging every event with component.
func With(component string) zerolog.Logger {
	return logger().With().Str("component", component).Logger()
}

func Debug() *zerolog.Event { return logger().Debug() }
func Info() *zerolog.Event  { return logger().Info() }
func Warn() *zerolog.Event  { return logger().Warn() }
func Error() *zerolog.Event { return logger().Error() }
func Fatal() *zerolog.Event { return logger().Fatal() }

// Printf logs at info level, formatting as fmt.Printf does.
func Printf(format string, v ...interface{}) {
	logger().Info().CallerSkipFrame(1).Msgf(format, v...)
}
