package storage

import (
	"context"

	"gorm.io/gorm"
)

// Execute runs fn inside a transaction on a pooled connection: commit when fn
// returns nil, rollback otherwise. The connection is released on every exit
// path. Each call is one atomic statement group; nothing spans two Execute
// calls.
func (s *Store) Execute(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Release(conn)

	if err := conn.orm.WithContext(ctx).Transaction(fn); err != nil {
		return Classify(err)
	}
	return nil
}

// Fetch runs a read-only fn on a pooled connection without a transaction.
// The connection is still released on every exit path.
func (s *Store) Fetch(ctx context.Context, fn func(db *gorm.DB) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Release(conn)

	if err := fn(conn.orm.WithContext(ctx)); err != nil {
		return Classify(err)
	}
	return nil
}
