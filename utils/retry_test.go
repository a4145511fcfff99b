package utils

import (
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(NewLogger(), "flaky-op", 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	calls := 0
	err := Retry(NewLogger(), "dead-op", 4, time.Millisecond, func() error {
		calls++
		return errors.New("still broken")
	})

	if err == nil {
		t.Fatal("expected an error after exhausting attempts")
	}
	if calls != 4 {
		t.Errorf("calls: got %d, want 4", calls)
	}
}

func TestRetryFirstTrySuccess(t *testing.T) {
	calls := 0
	err := Retry(NewLogger(), "healthy-op", 5, time.Millisecond, func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}
