package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is a non-blocking single-instance file lock.
type Lock struct {
	flock *flock.Flock
}

// New builds a lock at path. The lock file's parent directory is created if
// missing; the file itself appears on first acquisition.
func New(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	return &Lock{flock: flock.New(path)}, nil
}

// TryAcquire attempts the lock without blocking. A held lock is reported as
// (false, nil), not an error, so callers can skip cleanly.
func (l *Lock) TryAcquire() (bool, error) {
	ok, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (l *Lock) Release() error {
	return l.flock.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.flock.Path()
}
