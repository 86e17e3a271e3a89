// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/metrics"
)

var errUpstream = errors.New("upstream down")

func testConfig(name string) BreakerConfig {
	cfg := DefaultBreakerConfig(name)
	cfg.MinRequests = 4
	cfg.Timeout = 50 * time.Millisecond
	return cfg
}

func TestBreaker_Success(t *testing.T) {
	b := NewBreaker[int](testConfig("test-success"), zerolog.Nop())

	got, err := b.Execute(func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("Execute() = %d, %v", got, err)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
	if v := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-success", "success")); v != 1 {
		t.Errorf("success counter = %v, want 1", v)
	}
}

func TestBreaker_TripsAndRejects(t *testing.T) {
	b := NewBreaker[string](testConfig("test-trip"), zerolog.Nop())

	for i := 0; i < 4; i++ {
		if _, err := b.Execute(func() (string, error) { return "", errUpstream }); !errors.Is(err, errUpstream) {
			t.Fatalf("call %d: err = %v", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	called := false
	_, err := b.Execute(func() (string, error) {
		called = true
		return "ok", nil
	})
	if !IsRejection(err) {
		t.Errorf("expected rejection, got %v", err)
	}
	if called {
		t.Error("wrapped call ran while open")
	}
	if v := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-trip")); v != 2 {
		t.Errorf("state gauge = %v, want 2", v)
	}
}

func TestBreaker_Recovers(t *testing.T) {
	b := NewBreaker[int](testConfig("test-recover"), zerolog.Nop())
	for i := 0; i < 4; i++ {
		_, _ = b.Execute(func() (int, error) { return 0, errUpstream })
	}

	time.Sleep(80 * time.Millisecond)
	if b.State() != "half-open" {
		t.Fatalf("State() = %q, want half-open", b.State())
	}

	for i := 0; i < 3; i++ {
		if _, err := b.Execute(func() (int, error) { return 1, nil }); err != nil {
			t.Fatalf("probe %d: %v", i, err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreaker_IsSuccessful(t *testing.T) {
	cfg := testConfig("test-is-successful")
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}
	b := NewBreaker[int](cfg, zerolog.Nop())

	for i := 0; i < 10; i++ {
		_, _ = b.Execute(func() (int, error) { return 0, context.Canceled })
	}
	if b.State() != "closed" {
		t.Errorf("cancellations tripped the breaker: %q", b.State())
	}
}

func TestIsRejection(t *testing.T) {
	if IsRejection(errUpstream) {
		t.Error("plain error reported as rejection")
	}
	if IsRejection(nil) {
		t.Error("nil reported as rejection")
	}
}
