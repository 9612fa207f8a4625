// Package storage implements the pooled persistence-access layer: a single
// local sqlite file behind a fixed-size pool of reusable connections, with
// transactional execution, idempotent schema setup, and whole-file backup and
// restore.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	apperrors "gymgate/internal/errors"
)

// Store owns the sqlite database file and the connection pool built on it.
// Its lifetime is owned by the process entry point: construct with Open,
// tear down with Close.
type Store struct {
	// mu serializes Restore and Close against in-flight operations. Execute
	// and Fetch hold the read lock for their full duration, so an exclusive
	// lock is only granted when the store is quiescent.
	mu   sync.RWMutex
	path string
	size int
	db   *sql.DB
	pool *Pool
}

// Open opens (creating if necessary) the sqlite file at path and builds a
// pool of poolSize connections on it.
func Open(ctx context.Context, path string, poolSize int) (*Store, error) {
	s := &Store{path: path, size: poolSize}
	if err := s.open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) open(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
	}
	db.SetMaxOpenConns(s.size)
	db.SetMaxIdleConns(s.size)

	// WAL is persistent file state; set it once before the pool pins every
	// available connection.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
	}

	pool, err := NewPool(ctx, db, s.size)
	if err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	s.pool = pool
	return nil
}

// Path returns the location of the store file.
func (s *Store) Path() string {
	return s.path
}

// Close releases every connection and closes the database. The store is
// unusable afterwards; subsequent operations fail with ErrPoolUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Store) closeLocked() error {
	if s.pool != nil {
		_ = s.pool.Close()
		s.pool = nil
	}
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Restore replaces the store contents with the snapshot at src: the pool is
// torn down, the file is overwritten, and the pool is reopened. Destructive;
// callers are expected to have confirmed upstream.
func (s *Store) Restore(ctx context.Context, src string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("%w: backup file: %v", apperrors.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.closeLocked(); err != nil {
		return err
	}
	if err := copyFile(src, s.path); err != nil {
		// Reopen on the old contents so the store is not left dead.
		if oerr := s.open(ctx); oerr != nil {
			return fmt.Errorf("restore copy: %w (reopen also failed: %v)", err, oerr)
		}
		return fmt.Errorf("restore copy: %w", err)
	}
	// Stale WAL state belongs to the replaced file.
	_ = os.Remove(s.path + "-wal")
	_ = os.Remove(s.path + "-shm")

	return s.open(ctx)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
