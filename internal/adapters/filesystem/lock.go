// Package filesystem implements the repository, build-tree layout, and
// file lock ports against the local disk.
package filesystem

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

const (
	lockPollMin = 50 * time.Millisecond
	lockPollMax = 200 * time.Millisecond
)

// FileLock is an inter-process advisory lock backed by a sidecar
// "<file>.lock" containing the owning process's PID and a random token. At
// most one live holder exists per path on a host; a crashed holder's stale
// lock file is recovered by the next contender once its liveness check
// fails.
type FileLock struct {
	path string
}

// NewFileLock returns the lock guarding target; the lock file itself is
// target with ".lock" appended.
func NewFileLock(target string) *FileLock {
	return &FileLock{path: target + ".lock"}
}

// Handle is released by calling Release, which removes the lock file.
// Callers MUST release on every exit path, success or error.
type Handle struct {
	path  string
	token string
}

// Release removes the lock file, but only if it still holds the token this
// handle wrote — a contender that reaped this lock as stale and reacquired
// it in the meantime keeps its own lock file intact.
func (h *Handle) Release() error {
	if h == nil {
		return nil
	}
	data, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, token := parseLockFile(string(data)); token != h.token {
		return nil
	}
	err = os.Remove(h.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Acquire blocks until the lock is obtained or timeout elapses, retrying a
// stale-lock check between attempts and fast-waking on the lock file's
// removal via fsnotify instead of only polling.
func (l *FileLock) Acquire(timeout time.Duration) (*Handle, error) {
	deadline := time.Now().Add(timeout)
	pid := os.Getpid()
	token := uuid.NewString()
	content := strconv.Itoa(pid) + "\n" + token + "\n"

	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, writeErr := f.WriteString(content)
			closeErr := f.Close()
			if writeErr != nil {
				return nil, writeErr
			}
			if closeErr != nil {
				return nil, closeErr
			}
			return &Handle{path: l.path, token: token}, nil
		}
		if !os.IsExist(err) {
			return nil, &entities.FileSystemError{Op: "lock", Path: l.path, Err: err}
		}

		if l.reapStale() {
			continue
		}

		if !time.Now().Before(deadline) {
			return nil, &entities.LockTimeoutError{Path: l.path, Timeout: timeout}
		}

		waitForRelease(l.path, remaining(deadline, jitteredPoll()))
	}
}

// reapStale removes the lock file if the PID it names no longer refers to
// a live process on this host, returning true if it did so.
func (l *FileLock) reapStale() bool {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return false
	}
	pid, _ := parseLockFile(string(data))
	if pid <= 0 {
		return false
	}
	if processAlive(pid) {
		return false
	}
	return os.Remove(l.path) == nil
}

// parseLockFile splits a lock file's "<pid>\n<token>\n" content.
func parseLockFile(content string) (pid int, token string) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) == 0 {
		return 0, ""
	}
	pid, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return 0, ""
	}
	if len(lines) > 1 {
		token = strings.TrimSpace(lines[1])
	}
	return pid, token
}

// processAlive reports whether a process with the given PID exists on
// this host. Sending signal 0 performs no action but still returns an
// error if the process is gone or not owned by the caller.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil
}

func jitteredPoll() time.Duration {
	span := lockPollMax - lockPollMin
	return lockPollMin + time.Duration(rand.Int63n(int64(span)))
}

// remaining caps cap at the time left until deadline, so the final wait
// before timing out never overshoots it.
func remaining(deadline time.Time, cap time.Duration) time.Duration {
	left := time.Until(deadline)
	if left < cap {
		if left < 0 {
			return 0
		}
		return left
	}
	return cap
}

// waitForRelease blocks up to maxWait for path to be removed or renamed,
// using fsnotify to wake as soon as the current holder releases it rather
// than waiting out the full poll interval. Any setup failure falls back to
// a plain sleep, since this is a latency optimization, not a correctness
// requirement — the caller always re-checks by retrying Acquire.
func waitForRelease(path string, maxWait time.Duration) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		time.Sleep(maxWait)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		time.Sleep(maxWait)
		return
	}

	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Name == path && (ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0) {
				return
			}
		case <-watcher.Errors:
			return
		case <-timer.C:
			return
		}
	}
}
