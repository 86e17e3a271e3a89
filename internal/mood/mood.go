// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package mood holds the user's self-reported mood and its recent history.
package mood

import (
	"sync"
	"time"

	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/validation"
)

// HistoryLimit is the number of samples kept, newest first.
const HistoryLimit = 20

// Default current sample before the user records anything.
const (
	DefaultHappiness = 7
	DefaultEnergy    = 6
)

// Input is the validated shape of a mood report.
type Input struct {
	Happiness int `json:"happiness" validate:"min=1,max=10"`
	Energy    int `json:"energy" validate:"min=1,max=10"`
}

// State owns the current sample and the bounded history.
// Callers only ever receive copies.
type State struct {
	mu      sync.RWMutex
	current models.MoodSample
	history []models.MoodSample
	now     func() time.Time
}

// NewState returns a State with the default sample. A nil clock uses time.Now.
func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{
		current: models.MoodSample{
			Happiness: DefaultHappiness,
			Energy:    DefaultEnergy,
			Timestamp: now(),
		},
		history: make([]models.MoodSample, 0, HistoryLimit),
		now:     now,
	}
}

// Record validates and stores a new sample. It becomes current and is
// prepended to the history, evicting the oldest entry past HistoryLimit.
// Invalid input returns *validation.RequestValidationError and changes nothing.
func (s *State) Record(happiness, energy int) (models.MoodSample, error) {
	in := Input{Happiness: happiness, Energy: energy}
	if verr := validation.ValidateStruct(&in); verr != nil {
		return models.MoodSample{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sample := models.MoodSample{
		Happiness: happiness,
		Energy:    energy,
		Timestamp: s.now(),
	}
	s.current = sample

	s.history = append(s.history, models.MoodSample{})
	copy(s.history[1:], s.history)
	s.history[0] = sample
	if len(s.history) > HistoryLimit {
		s.history = s.history[:HistoryLimit]
	}

	return sample, nil
}

// Current returns the current sample.
func (s *State) Current() models.MoodSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// History returns a copy of the recorded samples, newest first.
func (s *State) History() []models.MoodSample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MoodSample, len(s.history))
	copy(out, s.history)
	return out
}
