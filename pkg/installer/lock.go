package installer

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	errUtils "github.com/kolja-aws/kolja/errors"
	log "github.com/kolja-aws/kolja/pkg/logger"
)

// lockRetryDelay is the delay between lock retry attempts.
const lockRetryDelay = 10 * time.Millisecond

// FileLock serializes writers of a shared file across processes.
type FileLock interface {
	WithLock(fn func() error) error
}

// flockFileLock implements FileLock using an advisory flock.
type flockFileLock struct {
	lockPath string
	timeout  time.Duration
}

// NewFileLock creates a FileLock for the given path.
// The lock file is created at path + ".lock" to prevent lock loss during atomic renames.
func NewFileLock(path string, timeout time.Duration) FileLock {
	return &flockFileLock{
		lockPath: path + ".lock",
		timeout:  timeout,
	}
}

// WithLock executes fn while holding an exclusive lock. Acquisition is
// retried until the timeout elapses, then fails with ErrLockTimeout.
func (f *flockFileLock) WithLock(fn func() error) error {
	lock := flock.New(f.lockPath)

	deadline := time.Now().Add(f.timeout)

	var locked bool
	var err error

	for {
		locked, err = lock.TryLock()
		if err != nil {
			return errors.Join(errUtils.ErrLockTimeout, err)
		}
		if locked {
			break
		}
		if time.Now().After(deadline) {
			break
		}
		time.Sleep(lockRetryDelay)
	}

	if !locked {
		return fmt.Errorf("%w: %s", errUtils.ErrLockTimeout, f.lockPath)
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Trace("Failed to unlock file", "error", err, "path", f.lockPath)
		}
	}()

	return fn()
}
