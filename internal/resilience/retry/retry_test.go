package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
	"time"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestWithBackoffSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithBackoffRetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(4), func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: http.StatusServiceUnavailable, Message: "unavailable"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithBackoffExhaustsAttempts(t *testing.T) {
	calls := 0
	retryable := &HTTPError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	err := WithBackoff(context.Background(), fastConfig(4), func() error {
		calls++
		return retryable
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
	if !errors.Is(err, retryable) {
		t.Errorf("expected wrapped last error, got %v", err)
	}
}

func TestWithBackoffStopsOnNonRetryable(t *testing.T) {
	calls := 0
	fatal := fmt.Errorf("parse failure")
	err := WithBackoff(context.Background(), fastConfig(4), func() error {
		calls++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call for non-retryable error, got %d", calls)
	}
}

func TestWithBackoffHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := fastConfig(4)
	cfg.InitialDelay = time.Minute

	errCh := make(chan error, 1)
	go func() {
		errCh <- WithBackoff(ctx, cfg, func() error {
			return syscall.ECONNREFUSED
		})
	}()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WithBackoff did not return after cancellation")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"http 500", &HTTPError{StatusCode: 500}, true},
		{"http 503", &HTTPError{StatusCode: 503}, true},
		{"http 429", &HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{"http 408", &HTTPError{StatusCode: http.StatusRequestTimeout}, true},
		{"http 404", &HTTPError{StatusCode: 404}, false},
		{"plain error", fmt.Errorf("bad feed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
