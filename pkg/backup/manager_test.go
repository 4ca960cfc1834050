package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/kolja-aws/kolja/errors"
)

func TestSnapshotCreatesTimestampedCopy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("[default]\nregion = eu-west-1\n"), 0o600))

	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.Local)
	manager := NewManager(WithClock(func() time.Time { return now }))

	backup, err := manager.Snapshot(path)
	require.NoError(t, err)
	require.NotNil(t, backup)

	assert.Equal(t, path, backup.OriginalPath)
	assert.Equal(t, path+".kolja-backup_20240115_143022", backup.BackupPath)
	assert.Equal(t, now, backup.Timestamp)

	content, err := os.ReadFile(backup.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "[default]\nregion = eu-west-1\n", string(content))
}

func TestSnapshotMissingSource(t *testing.T) {
	manager := NewManager()

	backup, err := manager.Snapshot(filepath.Join(t.TempDir(), "config"))
	require.NoError(t, err)
	assert.Nil(t, backup)
}

func TestRestoreCopiesBackupOverOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o600))

	manager := NewManager()
	backup, err := manager.Snapshot(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("clobbered\n"), 0o600))

	require.NoError(t, manager.Restore(backup))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(content))
}

func TestRestoreNilBackup(t *testing.T) {
	assert.NoError(t, NewManager().Restore(nil))
}

func TestRestoreMissingBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o600))

	manager := NewManager()
	backup, err := manager.Snapshot(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(backup.BackupPath))

	err = manager.Restore(backup)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrBackup)
}

func TestListReturnsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o600))

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)
	manager := NewManager(WithClock(func() time.Time { return now }))

	for i := 0; i < 3; i++ {
		_, err := manager.Snapshot(path)
		require.NoError(t, err)
		now = now.Add(time.Hour)
	}

	backups, err := manager.List(path)
	require.NoError(t, err)
	require.Len(t, backups, 3)

	assert.Equal(t, path+".kolja-backup_20240115_120000", backups[0].BackupPath)
	assert.Equal(t, path+".kolja-backup_20240115_110000", backups[1].BackupPath)
	assert.Equal(t, path+".kolja-backup_20240115_100000", backups[2].BackupPath)
}

func TestListIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o600))
	require.NoError(t, os.WriteFile(path+".kolja-backup_notatimestamp", []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "credentials"), []byte("x"), 0o600))

	backups, err := NewManager().List(path)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestListMissingDirectory(t *testing.T) {
	backups, err := NewManager().List(filepath.Join(t.TempDir(), "missing", "config"))
	require.NoError(t, err)
	assert.Nil(t, backups)
}

func TestPruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o600))

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)
	manager := NewManager(WithKeep(2), WithClock(func() time.Time { return now }))

	for i := 0; i < 4; i++ {
		_, err := manager.Snapshot(path)
		require.NoError(t, err)
		now = now.Add(time.Minute)
	}

	manager.Prune(path, nil)

	backups, err := manager.List(path)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, path+".kolja-backup_20240115_100300", backups[0].BackupPath)
	assert.Equal(t, path+".kolja-backup_20240115_100200", backups[1].BackupPath)
}

func TestPruneNeverRemovesCurrentBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o600))

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)
	manager := NewManager(WithKeep(1), WithClock(func() time.Time { return now }))

	oldest, err := manager.Snapshot(path)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		now = now.Add(time.Minute)
		_, err := manager.Snapshot(path)
		require.NoError(t, err)
	}

	manager.Prune(path, oldest)

	backups, err := manager.List(path)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, path+".kolja-backup_20240115_100200", backups[0].BackupPath)
	assert.Equal(t, oldest.BackupPath, backups[1].BackupPath)
}

func TestPruneUnderLimitIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o600))

	manager := NewManager()
	_, err := manager.Snapshot(path)
	require.NoError(t, err)

	manager.Prune(path, nil)

	backups, err := manager.List(path)
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
