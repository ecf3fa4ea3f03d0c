package db

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process already holds the store lock.
var ErrLocked = errors.New("database is locked by another planboard process")

// StoreLock guards a file-backed database so that only one server writes to
// it. In-memory stores need no lock.
type StoreLock struct {
	fl *flock.Flock
}

// AcquireLock takes an exclusive, non-blocking lock on "<dbPath>.lock".
// For MemoryPath it returns a no-op lock.
func AcquireLock(dbPath string) (*StoreLock, error) {
	if dbPath == MemoryPath {
		return &StoreLock{}, nil
	}
	fl := flock.New(dbPath + ".lock")
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring store lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return &StoreLock{fl: fl}, nil
}

// Release unlocks the store. Safe to call more than once.
func (l *StoreLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("releasing store lock: %w", err)
	}
	return nil
}

// Path returns the lock file path, or "" for an in-memory store.
func (l *StoreLock) Path() string {
	if l == nil || l.fl == nil {
		return ""
	}
	return l.fl.Path()
}
