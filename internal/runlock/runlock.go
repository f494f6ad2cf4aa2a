// Package runlock guards against two sweeps mutating the same tree at the
// same time. Concurrent runs over one root would race each other's
// deletions and double-count removals; an advisory file lock keyed by the
// resolved root path makes the second run fail fast instead.
package runlock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an advisory cross-process lock for one sweep root. The lock
// file lives under the system temp directory, never inside the tree being
// swept.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// Acquire takes the lock for root without blocking. It returns an error if
// another sweep currently holds the lock or the lock file cannot be
// created.
func Acquire(root string) (*RunLock, error) {
	resolved, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	path := lockPath(resolved)
	lock := flock.New(path)

	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("another sweep is already running on %s", resolved)
	}

	return &RunLock{flock: lock, path: path}, nil
}

// Release drops the lock and removes the lock file. Safe to call once per
// acquired lock.
func (rl *RunLock) Release() error {
	if err := rl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release run lock %s: %w", rl.path, err)
	}
	// Best effort: a stale lock file is harmless, flock state is kernel
	// side.
	os.Remove(rl.path)
	return nil
}

// Path returns the lock file location, for diagnostics.
func (rl *RunLock) Path() string {
	return rl.path
}

// lockPath derives a stable lock file name from the resolved root path.
func lockPath(resolved string) string {
	sum := sha256.Sum256([]byte(resolved))
	return filepath.Join(os.TempDir(), fmt.Sprintf("remove-junk-files-%x.lock", sum[:8]))
}
