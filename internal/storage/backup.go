package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	apperrors "gymgate/internal/errors"
)

// Backup writes a point-in-time snapshot of the store to dest using sqlite's
// VACUUM INTO, which produces a consistent copy while other connections keep
// working. Dest must not already exist.
func (s *Store) Backup(ctx context.Context, dest string) error {
	if dest == "" {
		return fmt.Errorf("%w: backup destination is empty", apperrors.ErrValidation)
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: backup destination %q already exists", apperrors.ErrValidation, dest)
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}
	}

	// VACUUM cannot run inside a transaction, so this goes through the read
	// path even though it writes a new file.
	return s.Fetch(ctx, func(db *gorm.DB) error {
		return db.Exec("VACUUM INTO ?", dest).Error
	})
}
