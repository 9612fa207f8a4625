package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupDefaultDestination(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	svc := &backupService{
		store:     store,
		backupDir: dir,
		now:       fixedTime(2024, time.June, 1),
	}

	path, err := svc.Backup(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "gym-backup-20240601-"))
	assert.True(t, strings.HasSuffix(path, ".db"))
	assert.FileExists(t, path)

	// Generated names embed a random component, so a second backup to the
	// default destination does not collide.
	other, err := svc.Backup(context.Background(), "")
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
}

func TestBackupExplicitDestination(t *testing.T) {
	store := newTestStore(t)
	svc := &backupService{
		store:     store,
		backupDir: t.TempDir(),
		now:       time.Now,
	}

	dest := filepath.Join(t.TempDir(), "snap.db")
	path, err := svc.Backup(context.Background(), dest)
	require.NoError(t, err)
	assert.Equal(t, dest, path)
	assert.FileExists(t, dest)

	// A directory destination gets a generated file name inside it.
	dir := t.TempDir()
	path, err = svc.Backup(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.FileExists(t, path)
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	seedPlan(t, store, "Monthly", 30)
	svc := &backupService{
		store:     store,
		backupDir: t.TempDir(),
		now:       time.Now,
	}
	ctx := context.Background()

	path, err := svc.Backup(ctx, "")
	require.NoError(t, err)

	seedPlan(t, store, "Yearly", 365)
	require.NoError(t, svc.Restore(ctx, path))

	plans, err := newPlanService(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Monthly", plans[0].Name)
}
