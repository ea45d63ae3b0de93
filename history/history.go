// Package history persists a log of evaluated expressions in SQLite. It is
// used by the CLI only; the evaluator core keeps no state beyond the memory
// cell.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	expr TEXT NOT NULL,
	value REAL,
	error TEXT NOT NULL DEFAULT '',
	at TEXT NOT NULL
);`

const (
	defaultDir = ".calc"
	defaultDB  = "history.db"
)

// Record is one logged evaluation. Err is empty for successes.
type Record struct {
	ID    int64
	Expr  string
	Value float64
	Err   string
	At    time.Time
}

// Store is a SQLite-backed evaluation log.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database path, ~/.calc/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("history: resolve user home: %w", err)
	}
	return filepath.Join(home, defaultDir, defaultDB), nil
}

// Open opens (or creates) the history store at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history: store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open store: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: set WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one evaluation to the log. errText is empty for successes.
func (s *Store) Record(ctx context.Context, expr string, value float64, errText string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO evaluations (expr, value, error, at) VALUES (?, ?, ?, ?)",
		expr, value, errText, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: record evaluation: %w", err)
	}
	return nil
}

// Recent returns up to n records, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, expr, value, error, at FROM evaluations ORDER BY id DESC LIMIT ?", n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()
	var recs []Record
	for rows.Next() {
		var r Record
		var at string
		if err := rows.Scan(&r.ID, &r.Expr, &r.Value, &r.Err, &at); err != nil {
			return nil, fmt.Errorf("history: scan record: %w", err)
		}
		if r.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("history: parse record time: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate records: %w", err)
	}
	return recs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
