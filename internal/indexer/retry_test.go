package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWithRetryRecovers(t *testing.T) {
	calls := 0
	got, err := withRetry(context.Background(), 3, time.Millisecond, zap.NewNop(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("temporary")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 || calls != 3 {
		t.Fatalf("got %d after %d calls", got, calls)
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), 2, time.Millisecond, zap.NewNop(), func() (int, error) {
		calls++
		return 0, errors.New("down")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestWithRetryNoRetries(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), 0, time.Millisecond, zap.NewNop(), func() (string, error) {
		calls++
		return "", errors.New("down")
	})
	if err == nil || calls != 1 {
		t.Fatalf("expected a single failed attempt, got %d calls err=%v", calls, err)
	}
}
