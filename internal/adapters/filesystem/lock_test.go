package filesystem

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func TestFileLock_AcquireReleaseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "env.json")

	lock := NewFileLock(target)
	handle, err := lock.Acquire(time.Second)
	if err != nil {
		t.Fatalf("expected acquire to succeed, got %v", err)
	}
	if _, err := os.Stat(target + ".lock"); err != nil {
		t.Fatalf("expected lock file to exist, got %v", err)
	}

	if err := handle.Release(); err != nil {
		t.Fatalf("expected release to succeed, got %v", err)
	}
	if _, err := os.Stat(target + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("expected lock file to be removed after release, stat err = %v", err)
	}
}

func TestFileLock_AcquireTimesOutWhileHeld(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "env.json")

	lock := NewFileLock(target)
	first, err := lock.Acquire(time.Second)
	if err != nil {
		t.Fatalf("expected first acquire to succeed, got %v", err)
	}
	defer first.Release()

	_, err = lock.Acquire(100 * time.Millisecond)
	if err == nil {
		t.Fatal("expected second acquire to time out while the lock is held")
	}
}

func TestFileLock_ReapsStaleLockFromDeadProcess(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "env.json")
	lockPath := target + ".lock"

	// A PID astronomically unlikely to be alive, standing in for a
	// crashed holder.
	deadPID := 1 << 30
	content := strconv.Itoa(deadPID) + "\ndead-token\n"
	if err := os.WriteFile(lockPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to seed stale lock file: %v", err)
	}

	lock := NewFileLock(target)
	handle, err := lock.Acquire(2 * time.Second)
	if err != nil {
		t.Fatalf("expected acquire to reap the stale lock and succeed, got %v", err)
	}
	defer handle.Release()

	data, err := os.ReadFile(lockPath)
	if err != nil {
		t.Fatalf("expected lock file to exist after reacquire, got %v", err)
	}
	if string(data) == content {
		t.Fatal("expected the stale lock content to have been replaced")
	}
}

func TestHandle_ReleaseIsNoOpIfLockWasReaped(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "env.json")

	lock := NewFileLock(target)
	handle, err := lock.Acquire(time.Second)
	if err != nil {
		t.Fatalf("expected acquire to succeed, got %v", err)
	}

	// Simulate another process reaping this lock as stale and
	// reacquiring it under a new token.
	if err := os.Remove(target + ".lock"); err != nil {
		t.Fatalf("failed to simulate reap: %v", err)
	}
	other, err := lock.Acquire(time.Second)
	if err != nil {
		t.Fatalf("expected reacquire to succeed, got %v", err)
	}
	defer other.Release()

	if err := handle.Release(); err != nil {
		t.Fatalf("expected stale release to be a no-op, got %v", err)
	}
	if _, err := os.Stat(target + ".lock"); err != nil {
		t.Fatal("expected the other holder's lock file to remain after the stale release")
	}
}
