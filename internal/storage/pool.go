package storage

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "gymgate/internal/errors"
)

// Conn is one pooled storage connection: a dedicated sqlite connection and
// the gorm handle bound to it. A Conn is exclusively owned by a single caller
// between Acquire and Release.
type Conn struct {
	raw *sql.Conn
	orm *gorm.DB
}

// DB returns the gorm handle bound to this connection.
func (c *Conn) DB() *gorm.DB {
	return c.orm
}

// Pool hands out at most size concurrently-usable connections. Capacity is
// fixed for the lifetime of the pool; there is no growth or shrink.
type Pool struct {
	conns chan *Conn
	size  int
}

// NewPool checks size connections out of db and wraps each in a gorm session
// pinned to that connection. Sqlite PRAGMAs that are per-connection state
// (foreign keys, busy timeout) are applied here.
func NewPool(ctx context.Context, db *sql.DB, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		conns: make(chan *Conn, size),
		size:  size,
	}
	for i := 0; i < size; i++ {
		conn, err := openConn(ctx, db)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.conns <- conn
	}
	return p, nil
}

func openConn(ctx context.Context, db *sql.DB) (*Conn, error) {
	raw, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
	}
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := raw.ExecContext(ctx, pragma); err != nil {
			_ = raw.Close()
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
		}
	}
	orm, err := gorm.Open(sqlite.New(sqlite.Config{Conn: raw}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
	}
	return &Conn{raw: raw, orm: orm}, nil
}

// Acquire blocks until a connection is free, then returns exclusive use of
// it. Context cancellation is the only early exit. An uninitialized pool
// fails with ErrPoolUnavailable.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if p == nil || p.conns == nil {
		return nil, apperrors.ErrPoolUnavailable
	}
	select {
	case conn := <-p.conns:
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns the connection to the pool, unblocking one waiter if any.
func (p *Pool) Release(conn *Conn) {
	if p == nil || p.conns == nil || conn == nil {
		return
	}
	p.conns <- conn
}

// Size returns the fixed pool capacity.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

// Close tears down every idle connection. Callers must have released all
// connections first; the Store serializes Close against in-flight operations.
func (p *Pool) Close() error {
	if p == nil || p.conns == nil {
		return nil
	}
	var firstErr error
	for {
		select {
		case conn := <-p.conns:
			if err := conn.raw.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		default:
			return firstErr
		}
	}
}
