// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package resilience wraps sony/gobreaker with MoodMate's logging and metrics.
//
// The weather provider and the TMDb catalog client both sit behind a Breaker
// so that an unavailable upstream fails fast instead of stalling generations.
package resilience

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moodmate/internal/metrics"
)

// BreakerConfig configures a circuit breaker.
type BreakerConfig struct {
	Name string

	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32

	// Interval resets the counts while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// MinRequests and FailureRatio decide when to trip.
	MinRequests  uint32
	FailureRatio float64

	// IsSuccessful classifies errors that must not count as failures.
	// nil counts every non-nil error as a failure.
	IsSuccessful func(err error) bool
}

// DefaultBreakerConfig opens after 60% failures over at least 10 requests,
// waits 2 minutes and then allows 3 probes.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker is a typed circuit breaker that records Prometheus metrics.
type Breaker[T any] struct {
	cb     *gobreaker.CircuitBreaker[T]
	name   string
	logger zerolog.Logger
}

// NewBreaker creates a breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreaker[T any](cfg BreakerConfig, logger zerolog.Logger) *Breaker[T] {
	logger = logger.With().Str("component", "circuit-breaker").Str("breaker", cfg.Name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
		IsSuccessful: cfg.IsSuccessful,
	}

	return &Breaker[T]{
		cb:     gobreaker.NewCircuitBreaker[T](settings),
		name:   cfg.Name,
		logger: logger,
	}
}

// Execute runs fn under breaker protection.
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if IsRejection(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Warn().Err(err).Msg("Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return result, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// State returns "closed", "half-open" or "open".
func (b *Breaker[T]) State() string {
	return stateToString(b.cb.State())
}

// Name returns the breaker name.
func (b *Breaker[T]) Name() string {
	return b.name
}

// IsRejection reports whether err came from the breaker itself rather than
// from the wrapped call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
