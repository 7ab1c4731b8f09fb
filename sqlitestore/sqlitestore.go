// Package sqlitestore keeps books in an embedded SQLite database, for
// self-hosted single-binary deployments where no remote service is
// wanted.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// Store implements accounting.Store on a single SQLite table of book
// snapshots keyed by owner.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "farmbook.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS books (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create books table: %w", err)
	}
	return &Store{db: db}, nil
}

// Push upserts the book snapshot for key.
func (s *Store) Push(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO books(key,payload,updated_at) VALUES(?,?,?)
		ON CONFLICT(key) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("push %q: %w", key, err)
	}
	return nil
}

// Pull retrieves the book snapshot stored for key. A missing row is
// reported as accounting.ErrNotFound.
func (s *Store) Pull(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM books WHERE key=?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pull %q: %w", key, accounting.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("pull %q: %w", key, err)
	}
	return payload, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
