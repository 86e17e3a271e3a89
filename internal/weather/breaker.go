// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package weather

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/resilience"
)

// BreakerProvider wraps a Provider with a circuit breaker. An open circuit
// surfaces as ErrProviderUnavailable without calling the inner provider.
type BreakerProvider struct {
	inner   Provider
	breaker *resilience.Breaker[*models.WeatherSnapshot]
}

// NewBreakerProvider wraps inner.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerProvider(inner Provider, cfg resilience.BreakerConfig, logger zerolog.Logger) *BreakerProvider {
	if cfg.IsSuccessful == nil {
		// Permission and cancellation say nothing about upstream health.
		cfg.IsSuccessful = func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrLocationPermissionDenied) ||
				errors.Is(err, context.Canceled)
		}
	}
	return &BreakerProvider{
		inner:   inner,
		breaker: resilience.NewBreaker[*models.WeatherSnapshot](cfg, logger),
	}
}

// FetchWeather implements Provider.
func (p *BreakerProvider) FetchWeather(ctx context.Context, coords Coordinates) (*models.WeatherSnapshot, error) {
	snap, err := p.breaker.Execute(func() (*models.WeatherSnapshot, error) {
		return p.inner.FetchWeather(ctx, coords)
	})
	if err != nil && resilience.IsRejection(err) {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	return snap, err
}

// State returns the breaker state.
func (p *BreakerProvider) State() string {
	return p.breaker.State()
}

var _ Provider = (*BreakerProvider)(nil)
