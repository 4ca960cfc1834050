// Package backup snapshots files before destructive writes and restores them
// on failure.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/filesystem"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

// Suffix marks backup files: <original>.kolja-backup_<timestamp>.
const Suffix = ".kolja-backup"

// timestampLayout is sortable, so retention can order backups by name alone.
const timestampLayout = "20060102_150405"

// DefaultKeep is how many backups Prune retains per original path.
const DefaultKeep = 5

// Backup references one snapshot. Backups are never mutated after creation.
type Backup struct {
	OriginalPath string
	BackupPath   string
	Timestamp    time.Time
}

// Manager creates, restores, lists, and prunes backups. Backups live next to
// the original file so they survive even when XDG directories are wiped.
type Manager struct {
	fs   filesystem.FileSystem
	keep int
	now  func() time.Time
}

// Option adjusts a Manager.
type Option func(*Manager)

// WithFileSystem injects a FileSystem, for tests.
func WithFileSystem(fs filesystem.FileSystem) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithKeep overrides how many backups Prune retains.
func WithKeep(keep int) Option {
	return func(m *Manager) {
		if keep > 0 {
			m.keep = keep
		}
	}
}

// WithClock injects the time source, for deterministic backup names in tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a backup manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		fs:   filesystem.NewOSFileSystem(),
		keep: DefaultKeep,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot copies the file at path to a timestamped sibling. A missing
// source is not an error: there is nothing to protect yet, and the returned
// backup is nil.
func (m *Manager) Snapshot(path string) (*Backup, error) {
	content, err := m.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No existing file to back up", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: cannot read %s: %w", errUtils.ErrBackup, path, err)
	}

	timestamp := m.now()
	backupPath := fmt.Sprintf("%s%s_%s", path, Suffix, timestamp.Format(timestampLayout))

	if err := m.fs.WriteFile(backupPath, content, awsConfigFileMode); err != nil {
		return nil, fmt.Errorf("%w: cannot write %s: %w", errUtils.ErrBackup, backupPath, err)
	}

	log.Debug("Created backup", "path", path, "backup", backupPath)

	return &Backup{
		OriginalPath: path,
		BackupPath:   backupPath,
		Timestamp:    timestamp,
	}, nil
}

// awsConfigFileMode matches the permissions the AWS CLI uses for its own
// files.
const awsConfigFileMode = 0o600

// Restore copies the backup content back over the original path. Restoring a
// nil backup is a no-op, mirroring Snapshot of a missing file.
func (m *Manager) Restore(b *Backup) error {
	if b == nil {
		return nil
	}

	content, err := m.fs.ReadFile(b.BackupPath)
	if err != nil {
		return fmt.Errorf("%w: backup %s is gone: %w", errUtils.ErrBackup, b.BackupPath, err)
	}

	if err := m.fs.WriteFileAtomic(b.OriginalPath, content, awsConfigFileMode); err != nil {
		return fmt.Errorf("%w: cannot restore %s: %w", errUtils.ErrBackup, b.OriginalPath, err)
	}

	log.Debug("Restored backup", "path", b.OriginalPath, "backup", b.BackupPath)
	return nil
}

// List returns all backups for path, newest first.
func (m *Manager) List(path string) ([]Backup, error) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + Suffix + "_"

	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Join(errUtils.ErrBackup, err)
	}

	var backups []Backup
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stamp, ok := strings.CutPrefix(entry.Name(), prefix)
		if !ok {
			continue
		}
		timestamp, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
		if err != nil {
			log.Trace("Skipping file with unparseable backup timestamp", "name", entry.Name())
			continue
		}
		backups = append(backups, Backup{
			OriginalPath: path,
			BackupPath:   filepath.Join(dir, entry.Name()),
			Timestamp:    timestamp,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].BackupPath > backups[j].BackupPath
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// Prune deletes all but the newest keep backups for path. The
// currently-referenced backup always survives, even when it falls outside
// the keep window. Prune is best-effort: removal failures are logged, not
// returned.
func (m *Manager) Prune(path string, current *Backup) {
	backups, err := m.List(path)
	if err != nil {
		log.Warn("Cannot list backups for pruning", "path", path, "error", err)
		return
	}
	if len(backups) <= m.keep {
		return
	}

	for _, b := range backups[m.keep:] {
		if current != nil && b.BackupPath == current.BackupPath {
			continue
		}
		if err := m.fs.Remove(b.BackupPath); err != nil {
			log.Warn("Cannot remove old backup", "backup", b.BackupPath, "error", err)
			continue
		}
		log.Debug("Pruned old backup", "backup", b.BackupPath)
	}
}
