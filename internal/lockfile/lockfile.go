// Package lockfile keeps two interactive lift sessions from writing the same
// database. The lock holds "pid|executable" and is considered stale when
// that process is gone or is some other program.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/logger"
)

var (
	ErrLocked    = errors.New("another lift session is running")
	ErrMalformed = errors.New("lockfile is malformed")
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	executableFunc  = currentExecutable
)

// Lock is a held session lock.
type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.SessionLockfileName)
}

// Acquire takes the session lock in dir, replacing a stale lock. The lock
// appears with its content already written, and only one of several
// concurrent callers can create it.
func Acquire(dir string) (*Lock, error) {
	path := Path(dir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	pid := getpidFunc()
	content := fmt.Sprintf("%d|%s", pid, executableFunc())
	for range 3 {
		err := create(path, content)
		if err == nil {
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to write lockfile: %w", err)
		}

		owner, err := holder(path)
		switch {
		case err == nil:
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, owner)
		case errors.Is(err, os.ErrNotExist):
			// released in between
			continue
		}
		logger.Warn("replacing stale session lock", "path", path, "reason", err)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, ErrLocked
}

// create writes content to a temporary file and links it into place, which
// fails with os.ErrExist when path is already taken.
func create(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".lock-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Link(tmp.Name(), path)
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	pid, _, err := read(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if pid != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// holder returns the pid of a live session owning path. Any error means the
// lock is free or stale.
func holder(path string) (int, error) {
	pid, exe, err := read(path)
	if err != nil {
		return 0, err
	}
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, fmt.Errorf("process %d not running", pid)
	}
	if process.Executable() != exe {
		return 0, fmt.Errorf("process with PID %d is %s, not %s", pid, process.Executable(), exe)
	}
	return pid, nil
}

func read(path string) (int, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, "", err
	}
	pidStr, exe, ok := strings.Cut(strings.TrimSpace(string(content)), "|")
	if !ok || strings.TrimSpace(exe) == "" {
		return 0, "", ErrMalformed
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid < 1 {
		return 0, "", fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}
	return pid, exe, nil
}

func currentExecutable() string {
	p, err := findProcessFunc(os.Getpid())
	if err == nil && p != nil {
		return p.Executable()
	}
	return filepath.Base(os.Args[0])
}
