package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gymgate/internal/storage"
)

// BackupService snapshots the store to a file and restores it from one.
type BackupService interface {
	Backup(ctx context.Context, dest string) (path string, err error)
	Restore(ctx context.Context, src string) error
}

type backupService struct {
	store     *storage.Store
	backupDir string
	now       func() time.Time
}

// NewBackupService creates a new backup service writing to backupDir by
// default.
func NewBackupService(store *storage.Store, backupDir string) BackupService {
	return &backupService{store: store, backupDir: backupDir, now: time.Now}
}

// Backup writes a snapshot of the store and returns the path it was written
// to. An empty dest, or a dest without a .db suffix, is treated as a
// directory and a timestamped file name is generated inside it.
func (s *backupService) Backup(ctx context.Context, dest string) (string, error) {
	if dest == "" {
		dest = s.backupDir
	}
	if !strings.HasSuffix(dest, ".db") {
		dest = filepath.Join(dest, s.backupName())
	}
	if err := s.store.Backup(ctx, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Restore replaces the live database with the snapshot at src.
func (s *backupService) Restore(ctx context.Context, src string) error {
	return s.store.Restore(ctx, src)
}

func (s *backupService) backupName() string {
	return fmt.Sprintf("gym-backup-%s-%s.db",
		s.now().Format("20060102-150405"),
		uuid.New().String()[:8])
}
