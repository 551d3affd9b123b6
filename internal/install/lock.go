package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// lockFilename is the advisory lock created inside the install directory.
	lockFilename = ".tpdf-install.lock"

	// staleLockThreshold is the maximum age of a lock before it is
	// considered abandoned by a dead run and taken over.
	staleLockThreshold = 10 * time.Minute
)

// ErrLockHeld is returned when another installer run holds the install
// directory lock.
var ErrLockHeld = errors.New("another installation is in progress for this directory")

// Lock is an advisory, per-install-directory mutual exclusion. Two
// simultaneous runs targeting the same directory must not interleave the
// final move step.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock takes the advisory lock for the install directory, creating
// the directory first if needed. Lock creation uses O_CREATE|O_EXCL so the
// acquisition is atomic.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionError{Path: dir, Cause: err}
		}
		return nil, fmt.Errorf("create install directory: %w", err)
	}

	lockPath := filepath.Join(dir, lockFilename)

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	if err != nil {
		switch {
		case os.IsExist(err):
			// Lock exists - take it over only if it is stale.
			if stale, _ := isLockStale(lockPath); !stale {
				return nil, ErrLockHeld
			}
			os.Remove(lockPath)
			file, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
			if err != nil {
				return nil, ErrLockHeld
			}
		case os.IsPermission(err):
			return nil, &PermissionError{Path: dir, Cause: err}
		default:
			return nil, fmt.Errorf("create lock file: %w", err)
		}
	}

	lockData := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(lockData); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock data: %w", err)
	}

	return &Lock{path: lockPath, file: file}, nil
}

// Release drops the lock. Safe to call more than once.
func (l *Lock) Release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	if l.path != "" {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove lock file: %w", err)
		}
		l.path = ""
	}

	return nil
}

// isLockStale checks whether the lock file is older than the stale
// threshold.
func isLockStale(lockPath string) (bool, error) {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false, err
	}

	return time.Since(info.ModTime()) > staleLockThreshold, nil
}
