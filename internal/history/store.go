// Package history persists finished quiz sessions and individual answers
// in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed result history.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_sessions (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		questions INTEGER NOT NULL,
		answered INTEGER NOT NULL,
		score INTEGER NOT NULL,
		started_at INTEGER NOT NULL,
		completed_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_sessions_completed_at ON quiz_sessions (completed_at)`,
	`CREATE TABLE IF NOT EXISTS quiz_answers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		question_index INTEGER NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		correct INTEGER NOT NULL,
		answered_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_answers_session_id ON quiz_answers (session_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ResolvePath returns configured when set, otherwise DefaultDBPath.
// The parent directory is created.
func ResolvePath(configured string) (string, error) {
	if configured != "" {
		return configured, ensureDir(configured)
	}
	return DefaultDBPath()
}

// DefaultDBPath resolves the database file path in priority order:
// 1. TRIVIAZ_DB environment variable
// 2. $XDG_DATA_HOME/triviaz/triviaz.db
// 3. ~/.local/share/triviaz/triviaz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TRIVIAZ_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "triviaz", "triviaz.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
