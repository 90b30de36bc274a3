// Package store records LLM request metadata in a local SQLite file.
// Study sessions themselves are never persisted.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// pragmas are applied on the single pooled connection after open.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

// Store owns the database handle.
type Store struct {
	db *sql.DB
}

// Open is OpenContext with a background context.
func Open(dsn string) (*Store, error) {
	return OpenContext(context.Background(), dsn)
}

// OpenContext opens the SQLite database at dsn, applies pragmas and runs
// pending migrations.
func OpenContext(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; one connection also serializes writers.
	db.SetMaxOpenConns(1)

	if err := initialize(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initialize(ctx context.Context, db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("apply %q: %w", p, err)
		}
	}
	return migrate(ctx, db)
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// EventRepo returns the LLM request event repository.
func (s *Store) EventRepo() *LLMEventRepo {
	return &LLMEventRepo{db: s.db}
}

// DefaultDBPath returns $STUDYBUDDY_DB if set, else studybuddy.db under
// $XDG_DATA_HOME (default ~/.local/share). The parent directory is created.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STUDYBUDDY_DB"); p != "" {
		return p, EnsureDir(p)
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(base, "studybuddy", "studybuddy.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
