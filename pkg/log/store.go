package log

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
    level TEXT NOT NULL,
    component TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_time ON events (json_extract(body, '$.time'));
CREATE INDEX IF NOT EXISTS idx_events_level ON events (level);`

// sqliteStore is a zerolog.LevelWriter that inserts one row per event.
type sqliteStore struct {
	mu    sync.Mutex // serializes use of insert
	db    *sql.DB
	ins   *sql.Stmt
	count int64
}

func openStore(path string) (*sqliteStore, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode=wal&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	ins, err := db.Prepare(`INSERT INTO events (level, component, body) VALUES (?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return &sqliteStore{db: db, ins: ins}, nil
}

func (s *sqliteStore) Write(p []byte) (int, error) {
	return s.WriteLevel(zerolog.NoLevel, p)
}

func (s *sqliteStore) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	var head struct {
		Component string `json:"component"`
	}
	_ = json.Unmarshal(p, &head)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ins == nil {
		return 0, ErrNotInitialized
	}
	if _, err := s.ins.Exec(level.String(), head.Component, string(p)); err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	s.count++
	return len(p), nil
}

func (s *sqliteStore) written() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func (s *sqliteStore) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	if s.ins != nil {
		if err := s.ins.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close statement: %w", err))
		}
		s.ins = nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
		s.db = nil
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Entry is one stored event.
type Entry struct {
	ID         int64
	RecordedAt time.Time
	Level      string
	Component  string
	Data       string // raw JSON
}

// DefaultLimit caps queries that pass a limit <= 0.
const DefaultLimit = 100

func handle() (*sql.DB, error) {
	mu.RLock()
	defer mu.RUnlock()
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.db, nil
}

// Written reports how many events were stored since Init.
func Written() int64 {
	mu.RLock()
	defer mu.RUnlock()
	if store == nil {
		return 0
	}
	return store.written()
}

// GetLastNLogs returns the n most recent events, oldest first.
func GetLastNLogs(n int) ([]Entry, error) {
	db, err := handle()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Entry{}, nil
	}
	rows, err := db.Query(`SELECT id, recorded_at, level, component, body FROM events ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query last %d events: %w", n, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// GetLogsSince returns up to limit events whose own timestamp is at or
// after start, oldest first. An empty level matches every level.
func GetLogsSince(start time.Time, level string, limit int) ([]Entry, error) {
	db, err := handle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := db.Query(`
        SELECT id, recorded_at, level, component, body
        FROM events
        WHERE json_extract(body, '$.time') >= ? AND (? = '' OR level = ?)
        ORDER BY json_extract(body, '$.time') ASC, id ASC
        LIMIT ?`,
		start.UTC().Format(timeFieldFormat), level, level, limit)
	if err != nil {
		return nil, fmt.Errorf("query events since %s: %w", start.Format(time.RFC3339), err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &at, &e.Level, &e.Component, &e.Data); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.RecordedAt = parseTimestamp(at)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return entries, nil
}

var timestampFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

func parseTimestamp(ts string) time.Time {
	for _, f := range timestampFormats {
		if t, err := time.Parse(f, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
