package circuitbreaker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestExecuteSuccess(t *testing.T) {
	cb := New(FeedFetchConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected ok, got %v", result)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed state, got %v", cb.State())
	}
}

func TestTripsAfterFailureThreshold(t *testing.T) {
	cfg := Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      4,
	}
	cb := New(cfg)

	boom := fmt.Errorf("feed unavailable")
	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("expected open state after repeated failures, got %v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestStaysClosedBelowMinRequests(t *testing.T) {
	cfg := FeedFetchConfig()
	cb := New(cfg)

	boom := fmt.Errorf("feed unavailable")
	for i := 0; i < int(cfg.MinRequests)-1; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed state below the request floor, got %v", cb.State())
	}
}

func TestName(t *testing.T) {
	if got := New(FeedFetchConfig()).Name(); got != "feed-fetch" {
		t.Errorf("unexpected name %q", got)
	}
}
