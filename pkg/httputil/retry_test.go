package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	plain := errors.New("bad request")
	err = Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return plain
	})
	if !errors.Is(err, plain) {
		t.Errorf("Should return the original error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable errors: %d", calls)
	}

	// Retryable error triggers retries until success
	calls = 0
	err = Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient")}
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retries: %v", err)
	}
	if calls != 3 {
		t.Errorf("Should retry twice: %d", calls)
	}

	// Exhausted attempts return the last error
	calls = 0
	err = Retry(ctx, 2, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: errors.New("still down")}
	})
	if err == nil {
		t.Error("Exhausted retries should fail")
	}
	if calls != 2 {
		t.Errorf("Should stop at the attempt limit: %d", calls)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	wrapped := &RetryableError{Err: inner}

	if wrapped.Error() != inner.Error() {
		t.Errorf("Error message should be preserved: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, inner) {
		t.Error("Unwrap should expose the inner error")
	}
}
