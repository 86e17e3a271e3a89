// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package wal

import (
	"fmt"
	"math"
	"time"
)

// Config controls replay and compaction timing.
type Config struct {
	// RetryInterval is the time between retry loop iterations.
	RetryInterval time.Duration

	// MaxRetries is the attempt count after which failures are logged at
	// error level. Entries are retried forever regardless.
	MaxRetries int

	// InitialBackoff is the delay after the first failed attempt.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential backoff.
	MaxBackoff time.Duration

	// CompactInterval is the time between value log GC runs.
	CompactInterval time.Duration

	// GCDiscardRatio is passed to badger's RunValueLogGC.
	GCDiscardRatio float64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		RetryInterval:   15 * time.Second,
		MaxRetries:      10,
		InitialBackoff:  time.Second,
		MaxBackoff:      5 * time.Minute,
		CompactInterval: time.Hour,
		GCDiscardRatio:  0.5,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.RetryInterval <= 0 {
		return fmt.Errorf("retry interval must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative")
	}
	if c.InitialBackoff <= 0 || c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max backoff (%v) must be >= initial backoff (%v) > 0", c.MaxBackoff, c.InitialBackoff)
	}
	if c.GCDiscardRatio <= 0 || c.GCDiscardRatio >= 1 {
		return fmt.Errorf("gc discard ratio must be in (0, 1)")
	}
	return nil
}

// Backoff returns the delay before the next attempt of an entry that has
// already failed attempts times: InitialBackoff * 2^(attempts-1), capped.
func (c Config) Backoff(attempts int) time.Duration {
	if attempts <= 0 {
		return 0
	}
	// Cap the exponent to prevent overflow.
	if attempts > 50 {
		return c.MaxBackoff
	}
	backoff := time.Duration(float64(c.InitialBackoff) * math.Pow(2, float64(attempts-1)))
	if backoff < 0 || backoff > c.MaxBackoff {
		backoff = c.MaxBackoff
	}
	return backoff
}
