// Package installer applies computed file mutations transactionally.
//
// Every write follows the same protocol: serialize writers with an advisory
// lock, read the current content, compute the new content in memory, stop if
// nothing changed, snapshot the old content, write the new content
// atomically, and roll the snapshot back if the write fails. Old snapshots
// are pruned on success.
package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	errUtils "github.com/kolja-aws/kolja/errors"
	"github.com/kolja-aws/kolja/pkg/backup"
	"github.com/kolja-aws/kolja/pkg/filesystem"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

// DefaultLockTimeout bounds how long a writer waits for a contended lock.
const DefaultLockTimeout = 3 * time.Second

// Mutation computes updated content from the current content of a file.
// current is nil when the file does not exist yet. Mutations must be pure:
// all I/O belongs to the surrounding transaction.
type Mutation func(current []byte) (updated []byte, changed bool, err error)

// Result reports what a transaction did.
type Result struct {
	Path    string
	Changed bool
	Backup  *backup.Backup
}

// Installer runs transactional writes against a single file.
type Installer struct {
	fs       filesystem.FileSystem
	backups  *backup.Manager
	timeout  time.Duration
	fileMode os.FileMode
	dirMode  os.FileMode
}

// Option adjusts an Installer.
type Option func(*Installer)

// WithFileSystem injects a FileSystem, for tests.
func WithFileSystem(fs filesystem.FileSystem) Option {
	return func(i *Installer) {
		i.fs = fs
	}
}

// WithBackupManager injects the backup manager.
func WithBackupManager(m *backup.Manager) Option {
	return func(i *Installer) {
		i.backups = m
	}
}

// WithLockTimeout overrides how long to wait for the writer lock.
func WithLockTimeout(timeout time.Duration) Option {
	return func(i *Installer) {
		if timeout > 0 {
			i.timeout = timeout
		}
	}
}

// WithFileMode sets the mode for the target file.
func WithFileMode(mode os.FileMode) Option {
	return func(i *Installer) {
		i.fileMode = mode
	}
}

// WithDirMode sets the mode used when creating the target's parent directory.
func WithDirMode(mode os.FileMode) Option {
	return func(i *Installer) {
		i.dirMode = mode
	}
}

// New creates an Installer.
func New(opts ...Option) *Installer {
	i := &Installer{
		fs:       filesystem.NewOSFileSystem(),
		timeout:  DefaultLockTimeout,
		fileMode: 0o600,
		dirMode:  0o700,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.backups == nil {
		i.backups = backup.NewManager(backup.WithFileSystem(i.fs))
	}
	return i
}

// Apply runs mutate against the file at path under the writer lock and
// persists the result transactionally. A mutation that reports no change
// leaves the file, and its backups, untouched.
func (i *Installer) Apply(path string, mutate Mutation) (*Result, error) {
	// The lock file lives next to the target, so the parent directory must
	// exist before the lock can be taken.
	if err := i.fs.MkdirAll(filepath.Dir(path), i.dirMode); err != nil {
		return nil, fmt.Errorf("%w: cannot create %s: %w", errUtils.ErrWrite, filepath.Dir(path), err)
	}

	lock := NewFileLock(path, i.timeout)

	var result *Result
	err := lock.WithLock(func() error {
		r, err := i.apply(path, mutate)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Installer) apply(path string, mutate Mutation) (*Result, error) {
	// A writer that crashed between temp creation and rename leaves a stray
	// temp file behind. Sweep under the lock, before this run creates its own.
	filesystem.RemoveStaleTempFiles(path)

	current, err := i.fs.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		current = nil
	}

	updated, changed, err := mutate(current)
	if err != nil {
		return nil, err
	}
	if !changed {
		log.Debug("File already up to date", "path", path)
		return &Result{Path: path, Changed: false}, nil
	}

	// No write without a snapshot to roll back to.
	snapshot, err := i.backups.Snapshot(path)
	if err != nil {
		return nil, err
	}

	if err := i.fs.WriteFileAtomic(path, updated, i.fileMode); err != nil {
		writeErr := fmt.Errorf("%w: %s: %w", errUtils.ErrWrite, path, err)
		if restoreErr := i.backups.Restore(snapshot); restoreErr != nil {
			return nil, errors.Join(writeErr, restoreErr)
		}
		return nil, writeErr
	}

	i.backups.Prune(path, snapshot)

	log.Debug("File updated", "path", path, "bytes", len(updated))

	return &Result{Path: path, Changed: true, Backup: snapshot}, nil
}
