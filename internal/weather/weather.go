// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package weather holds the current weather snapshot and the providers that
// refresh it.
//
// A nil snapshot means "no weather signal". Generation always proceeds with
// whatever snapshot exists.
package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/moodmate/internal/logging"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/validation"
)

var (
	// ErrLocationPermissionDenied is returned when no coordinates are available.
	ErrLocationPermissionDenied = errors.New("location permission denied")

	// ErrProviderUnavailable wraps transport, status, decode and breaker failures.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// Coordinates identify where to fetch weather for.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`

	// Label is shown as the snapshot location. Defaults to "Current Location".
	Label string `json:"label,omitempty" validate:"max=100"`
}

// Provider fetches a fresh snapshot.
type Provider interface {
	FetchWeather(ctx context.Context, coords Coordinates) (*models.WeatherSnapshot, error)
}

// State owns the nullable current snapshot.
type State struct {
	mu       sync.RWMutex
	snapshot *models.WeatherSnapshot
}

// NewState returns a State holding a copy of initial, which may be nil.
func NewState(initial *models.WeatherSnapshot) *State {
	return &State{snapshot: initial.Clone()}
}

// Current returns a copy of the snapshot or nil.
func (s *State) Current() *models.WeatherSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Set replaces the snapshot wholesale. nil clears it.
func (s *State) Set(snap *models.WeatherSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap.Clone()
}

// Clear drops the snapshot.
func (s *State) Clear() {
	s.Set(nil)
}

// Refresh fetches weather for coords and stores it in state.
//
// nil coords or a permission failure clear the state and return
// ErrLocationPermissionDenied. A provider failure keeps the previous
// snapshot and returns an error wrapping ErrProviderUnavailable.
func Refresh(ctx context.Context, state *State, provider Provider, coords *Coordinates) (*models.WeatherSnapshot, error) {
	logger := logging.Ctx(ctx).With().Str("component", "weather").Logger()

	if coords == nil {
		state.Clear()
		logger.Debug().Msg("No coordinates, weather signal cleared")
		return nil, ErrLocationPermissionDenied
	}
	if verr := validation.ValidateStruct(coords); verr != nil {
		return nil, verr
	}

	snap, err := provider.FetchWeather(ctx, *coords)
	switch {
	case errors.Is(err, ErrLocationPermissionDenied):
		state.Clear()
		logger.Info().Msg("Location permission denied, weather signal cleared")
		return nil, err
	case err != nil:
		logger.Warn().Err(err).Msg("Weather refresh failed, keeping previous snapshot")
		if !errors.Is(err, ErrProviderUnavailable) {
			err = fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
		}
		return nil, err
	case snap == nil || !snap.Condition.Valid():
		logger.Warn().Msg("Weather provider returned an invalid snapshot")
		return nil, fmt.Errorf("%w: invalid snapshot", ErrProviderUnavailable)
	}

	state.Set(snap)
	logger.Debug().
		Float64("temperature", snap.TemperatureC).
		Str("condition", string(snap.Condition)).
		Msg("Weather refreshed")
	return state.Current(), nil
}
