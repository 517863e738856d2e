package runlock_test

import (
	"path/filepath"
	"testing"

	"aircheck/internal/runlock"
)

func TestTryAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aircheck.lock")

	lock, err := runlock.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := lock.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire: %v", err)
	}
	if !ok {
		t.Fatal("expected fresh lock to be acquired")
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	// Released lock can be re-acquired.
	ok, err = lock.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire after release: %v", err)
	}
	if !ok {
		t.Fatal("expected released lock to be re-acquirable")
	}
	_ = lock.Release()
}

func TestHeldLockReportsFalseWithoutError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aircheck.lock")

	first, err := runlock.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := first.TryAcquire()
	if err != nil || !ok {
		t.Fatalf("first acquire = (%v, %v)", ok, err)
	}
	defer first.Release()

	second, err := runlock.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err = second.TryAcquire()
	if err != nil {
		t.Fatalf("second TryAcquire: %v", err)
	}
	if ok {
		t.Fatal("held lock must not be acquired by a second holder")
	}
}

func TestNewCreatesMissingParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "nested", "aircheck.lock")

	lock, err := runlock.New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := lock.TryAcquire()
	if err != nil || !ok {
		t.Fatalf("acquire in created directory = (%v, %v)", ok, err)
	}
	_ = lock.Release()
}
