package lockfile

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

// fakeProcesses swaps the process table for the duration of a test.
func fakeProcesses(t *testing.T, self int, table map[int]string) {
	t.Helper()
	oldFind, oldPid, oldExe := findProcessFunc, getpidFunc, executableFunc
	t.Cleanup(func() {
		findProcessFunc, getpidFunc, executableFunc = oldFind, oldPid, oldExe
	})
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := table[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
	getpidFunc = func() int { return self }
	executableFunc = func() string { return "lift" }
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	fakeProcesses(t, 100, map[int]string{100: "lift"})

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	content, _ := os.ReadFile(Path(dir))
	if string(content) != "100|lift" {
		t.Errorf("lockfile = %q, want %q", content, "100|lift")
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Errorf("lockfile still present after Release()")
	}
}

func TestAcquireHeld(t *testing.T) {
	dir := t.TempDir()
	fakeProcesses(t, 100, map[int]string{100: "lift", 42: "lift"})
	if err := os.WriteFile(Path(dir), []byte("42|lift"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Errorf("Acquire() error = %v, want ErrLocked", err)
	}
}

func TestAcquireConcurrent(t *testing.T) {
	dir := t.TempDir()
	fakeProcesses(t, 100, map[int]string{100: "lift"})

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = Acquire(dir)
		}()
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case !errors.Is(err, ErrLocked):
			t.Errorf("Acquire() error = %v, want ErrLocked", err)
		}
	}
	if won != 1 {
		t.Errorf("%d callers got the lock, want 1", won)
	}
	if leftovers, _ := filepath.Glob(filepath.Join(dir, ".lock-*")); len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"dead process", "42|lift"},
		{"reused pid", "7|bash"},
		{"malformed", "garbage"},
		{"bad pid", "abc|lift"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			fakeProcesses(t, 100, map[int]string{100: "lift", 7: "zsh"})
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			lock, err := Acquire(dir)
			if err != nil {
				t.Fatalf("Acquire() failed: %v", err)
			}
			defer lock.Release()
			content, _ := os.ReadFile(Path(dir))
			if string(content) != "100|lift" {
				t.Errorf("lockfile = %q, want %q", content, "100|lift")
			}
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	fakeProcesses(t, 100, map[int]string{100: "lift"})

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(dir), []byte("200|lift"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Errorf("foreign lockfile removed: %v", err)
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("nil Release() = %v", err)
	}
}
