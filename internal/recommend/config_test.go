// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.MaxItems != MaxK {
		t.Errorf("MaxItems = %d, want %d", cfg.MaxItems, MaxK)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"k of one", func(c *Config) { c.MaxItems = 1 }, false},
		{"k above cap", func(c *Config) { c.MaxItems = 6 }, true},
		{"k zero", func(c *Config) { c.MaxItems = 0 }, true},
		{"negative weight", func(c *Config) { c.Weights.Mood = -0.1 }, true},
		{"all weights zero", func(c *Config) { c.Weights = ScorerWeights{} }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"short timeout", func(c *Config) { c.Timeout = time.Millisecond }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.MaxItems = 1
	clone.Weights.Mood = 9
	if cfg.MaxItems != MaxK || cfg.Weights.Mood != 0.5 {
		t.Error("Clone() shares state with the original")
	}
}
