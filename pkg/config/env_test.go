package config

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := GetEnvString("TEST_STRING", "fallback"); got != "value" {
		t.Errorf("expected value, got %q", got)
	}
	if got := GetEnvString("TEST_STRING_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := GetEnvInt("TEST_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	t.Setenv("TEST_INT_BAD", "not-a-number")
	if got := GetEnvInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}

	if got := GetEnvInt("TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	if !GetEnvBool("TEST_BOOL", false) {
		t.Error("expected true")
	}

	t.Setenv("TEST_BOOL_BAD", "yep")
	if GetEnvBool("TEST_BOOL_BAD", false) {
		t.Error("expected fallback false")
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	if got := GetEnvDuration("TEST_DURATION", time.Minute); got != 90*time.Second {
		t.Errorf("expected 90s, got %v", got)
	}

	t.Setenv("TEST_DURATION_BAD", "ninety")
	if got := GetEnvDuration("TEST_DURATION_BAD", time.Minute); got != time.Minute {
		t.Errorf("expected fallback 1m, got %v", got)
	}
}
