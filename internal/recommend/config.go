// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MaxItems is K, the number of items returned. 1..MaxK, default 5.
	MaxItems int `json:"max_items"`

	// Weights defines the relative contribution of each scorer.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights ScorerWeights `json:"weights"`

	// Timeout bounds a single DataSource query.
	Timeout time.Duration `json:"timeout"`

	// Seed is the random seed used to break score ties.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// ScorerWeights defines the relative contribution of each scorer.
type ScorerWeights struct {
	Mood    float64 `json:"mood"`
	Weather float64 `json:"weather"`
	Rating  float64 `json:"rating"`
}

// ToMap returns weights keyed by scorer name.
func (w ScorerWeights) ToMap() map[string]float64 {
	return map[string]float64{
		ScorerMood:    w.Mood,
		ScorerWeather: w.Weather,
		ScorerRating:  w.Rating,
	}
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxItems: MaxK,
		Weights: ScorerWeights{
			Mood:    0.5,
			Weather: 0.3,
			Rating:  0.2,
		},
		Timeout: 10 * time.Second,
		Seed:    42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxItems < 1 || c.MaxItems > MaxK {
		return fmt.Errorf("max_items must be in [1, %d], got %d", MaxK, c.MaxItems)
	}
	if c.Weights.Mood < 0 || c.Weights.Weather < 0 || c.Weights.Rating < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}
	if c.Weights.Mood+c.Weights.Weather+c.Weights.Rating == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
