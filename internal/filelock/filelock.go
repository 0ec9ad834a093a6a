// Package filelock provides an advisory append-lock around the Trace
// Ledger's single append-only sink (spec §5(c)). Grounded on
// github.com/gofrs/flock, which the harunnryd-heike corpus repo depends on
// for the same purpose (safe concurrent file access).
package filelock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// WithLock acquires an exclusive lock on lockPath, runs fn, then releases
// the lock, regardless of whether fn returns an error.
func WithLock(lockPath string, fn func() error) error {
	l := flock.New(lockPath)
	if err := l.Lock(); err != nil {
		return fmt.Errorf("acquiring file lock %q: %w", lockPath, err)
	}
	defer l.Unlock() //nolint:errcheck // best-effort release; lock is process-local

	return fn()
}
