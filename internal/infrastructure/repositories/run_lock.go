package repositories

import (
	"fmt"

	"github.com/gofrs/flock"
	logger "github.com/sirupsen/logrus"
)

// RunLock serializes runner invocations so two concurrent runs cannot
// interleave their output or fight over build artifacts.
type RunLock struct {
	lock *flock.Flock
}

// AcquireRunLock takes the lock file without blocking. A held lock is an
// error: a second run on the same working directory is a misconfiguration,
// not something to wait out.
func AcquireRunLock(path string) (*RunLock, error) {
	lock := flock.New(path)

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("run lock %s is held by another process", path)
	}

	return &RunLock{lock: lock}, nil
}

// Release drops the lock. Safe to call on every exit path.
func (it *RunLock) Release() {
	if it == nil || it.lock == nil {
		return
	}
	if err := it.lock.Unlock(); err != nil {
		logger.Warnf("Failed to release run lock: %v", err)
	}
}
