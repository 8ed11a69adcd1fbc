// Package lock guards host-global resources (brew database, colima VM,
// venv directory) against concurrent provisioning runs. Acquisition is
// fail-fast: a second simultaneous run errors out immediately instead of
// queueing behind the first.
package lock

// Locker provides cross-process mutual exclusion.
type Locker interface {
	// Lock acquires the lock or fails immediately when it is held elsewhere.
	Lock() error
	Unlock() error
}

// WithLock acquires the lock, calls fn, and releases the lock.
// If fn returns an error, the lock is still released.
func WithLock(l Locker, fn func() error) error {
	if err := l.Lock(); err != nil {
		return err
	}
	defer l.Unlock() //nolint:errcheck
	return fn()
}
