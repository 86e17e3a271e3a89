// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package weather

import (
	"context"
	"time"

	"github.com/tomtom215/moodmate/internal/models"
)

// StaticProvider always reports mild clear weather. It is the default
// provider and needs no network access.
type StaticProvider struct {
	Now func() time.Time
}

// DefaultSnapshot is the snapshot StaticProvider returns.
func DefaultSnapshot() *models.WeatherSnapshot {
	humidity := 60.0
	return &models.WeatherSnapshot{
		TemperatureC: 22,
		Condition:    models.ConditionClear,
		Location:     "Current Location",
		Humidity:     &humidity,
	}
}

// FetchWeather implements Provider.
func (p StaticProvider) FetchWeather(ctx context.Context, coords Coordinates) (*models.WeatherSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := DefaultSnapshot()
	if coords.Label != "" {
		snap.Location = coords.Label
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	snap.FetchedAt = now()
	return snap, nil
}

var _ Provider = StaticProvider{}
