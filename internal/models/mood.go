// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package models

import "time"

// Mood scale bounds.
const (
	MoodMin = 1
	MoodMax = 10
)

// MoodSample is a single self-reported mood reading.
// Samples are immutable once recorded.
type MoodSample struct {
	Happiness int       `json:"happiness" validate:"min=1,max=10"`
	Energy    int       `json:"energy" validate:"min=1,max=10"`
	Timestamp time.Time `json:"timestamp"`
}

// Valence maps happiness onto [0,1].
func (m MoodSample) Valence() float64 {
	return normalizeMoodAxis(m.Happiness)
}

// Arousal maps energy onto [0,1].
func (m MoodSample) Arousal() float64 {
	return normalizeMoodAxis(m.Energy)
}

func normalizeMoodAxis(v int) float64 {
	if v < MoodMin {
		v = MoodMin
	}
	if v > MoodMax {
		v = MoodMax
	}
	return float64(v-MoodMin) / float64(MoodMax-MoodMin)
}
