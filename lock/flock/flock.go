package flock

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/difli/wxo-adk-on-colima/lock"
)

// compile-time interface check.
var _ lock.Locker = (*Lock)(nil)

// Lock provides cross-process mutual exclusion using flock(2) via
// gofrs/flock. The lock file is long-lived and never deleted after use.
type Lock struct {
	fl *flock.Flock
}

// New creates a new Lock for the given path.
func New(path string) *Lock {
	return &Lock{fl: flock.New(path)}
}

// Lock attempts the flock exactly once. A held lock means another
// provisioning run is mutating the same host-global state, so we refuse to
// wait for it: runs are not queued, they are rejected.
func (l *Lock) Lock() error {
	locked, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire flock %s: %w", l.fl.Path(), err)
	}
	if !locked {
		return fmt.Errorf("another provisioning run is in progress (lock %s held)", l.fl.Path())
	}
	return nil
}

// Unlock releases the flock.
func (l *Lock) Unlock() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release flock %s: %w", l.fl.Path(), err)
	}
	return nil
}
