package maker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/squirrel-maker/internal/logger"
)

// LockFilename marks an output directory as in use by a running pass.
const LockFilename = ".squirrel-maker.lock"

// lockAttempts bounds stale-lock recovery.
const lockAttempts = 2

// ErrOutputDirBusy is returned when another pass holds the output directory.
var ErrOutputDirBusy = errors.New("output directory is used by another make run")

// dirLock is a held output-directory lock.
type dirLock struct {
	// path is the lock file location.
	path string
}

// acquireLock creates the lock file in dir, recovering locks left behind by dead processes.
func acquireLock(ctx context.Context, dir string) (*dirLock, error) {
	path := filepath.Join(dir, LockFilename)

	for range lockAttempts {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600) //nolint:gosec // Path is built from the output directory.
		if err == nil {
			_, writeErr := fmt.Fprintf(f, "%d\n", os.Getpid())
			closeErr := f.Close()

			if err = errors.Join(writeErr, closeErr); err != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("write lock file: %w", err)
			}

			return &dirLock{path: path}, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		stale, err := isStaleLock(path)
		if err != nil {
			return nil, err
		}

		if !stale {
			return nil, fmt.Errorf("%s: %w", dir, ErrOutputDirBusy)
		}

		logger.WarnKV(ctx, "Removing stale lock left by a previous run", "path", path)

		if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("remove stale lock: %w", err)
		}
	}

	return nil, fmt.Errorf("%s: %w", dir, ErrOutputDirBusy)
}

// isStaleLock reports whether the process recorded in the lock file is gone.
func isStaleLock(path string) (bool, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("read lock file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil || pid <= 0 {
		// Garbage in the lock file; nobody can own it.
		return true, nil
	}

	if pid == os.Getpid() {
		return false, nil
	}

	process, err := ps.FindProcess(pid)
	if err != nil {
		return false, fmt.Errorf("look up lock owner %d: %w", pid, err)
	}

	return process == nil, nil
}

// release removes the lock file.
func (l *dirLock) release(ctx context.Context) {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Unable to remove lock file", "path", l.path, "error", err)
	}
}
