package lock

import (
	"context"
	"errors"
	"testing"
)

func TestLocalLocker_ExclusivePerKey(t *testing.T) {
	ctx := context.Background()
	locker := NewLocalLocker()

	release, err := locker.Lock(ctx, "production:1")
	if err != nil {
		t.Fatalf("Expected first lock to succeed: %v", err)
	}

	if _, err := locker.Lock(ctx, "production:1"); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("Expected ErrNotObtained while held, got %v", err)
	}

	other, err := locker.Lock(ctx, "production:2")
	if err != nil {
		t.Fatalf("Expected independent key to lock: %v", err)
	}
	other()

	release()
	release()

	again, err := locker.Lock(ctx, "production:1")
	if err != nil {
		t.Fatalf("Expected lock after release to succeed: %v", err)
	}
	again()
}

func TestLocalLocker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLocalLocker().Lock(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
