// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package main

import (
	"fmt"

	"github.com/tomtom215/moodmate/internal/auth"
	"github.com/tomtom215/moodmate/internal/catalog"
	"github.com/tomtom215/moodmate/internal/config"
	"github.com/tomtom215/moodmate/internal/logging"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
	"github.com/tomtom215/moodmate/internal/recommend/reranking"
	"github.com/tomtom215/moodmate/internal/resilience"
	"github.com/tomtom215/moodmate/internal/weather"
)

// initEngine builds the recommendation engine over the configured catalog.
// Music always comes from the built-in catalog; movies come from TMDb when
// catalog.source is tmdb.
func initEngine(cfg *config.Config) (*recommend.Engine, error) {
	static := catalog.NewStaticSource()
	var movies recommend.DataSource = static

	if cfg.Catalog.Source == "tmdb" {
		movies = catalog.NewTMDbSource(catalog.TMDbConfig{
			APIKey:       cfg.Catalog.TMDbAPIKey,
			BaseURL:      cfg.Catalog.TMDbBaseURL,
			ImageBaseURL: cfg.Catalog.TMDbImageBaseURL,
			Timeout:      cfg.Catalog.Timeout,
			Breaker:      resilience.DefaultBreakerConfig("tmdb"),
		}, logging.Logger())
		if cfg.Catalog.CacheEnabled {
			movies = catalog.NewCachedSource(movies, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)
		}
		logging.Info().Bool("cache", cfg.Catalog.CacheEnabled).Msg("TMDb movie catalog enabled")
	}

	source := catalog.NewRouter(map[models.Domain]recommend.DataSource{
		models.DomainMovie: movies,
		models.DomainMusic: static,
	})

	engine, err := recommend.NewEngine(&recommend.Config{
		MaxItems: cfg.Recommend.MaxItems,
		Weights: recommend.ScorerWeights{
			Mood:    cfg.Recommend.MoodWeight,
			Weather: cfg.Recommend.WeatherWeight,
			Rating:  cfg.Recommend.RatingWeight,
		},
		Timeout: cfg.Recommend.Timeout,
		Seed:    cfg.Recommend.Seed,
	}, source, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	if cfg.Recommend.DiversityLambda < 1 {
		engine.RegisterReranker(reranking.NewMMR(cfg.Recommend.DiversityLambda))
	}
	return engine, nil
}

// initWeather returns the configured provider. Open-Meteo sits behind a
// circuit breaker so an outage fails fast instead of stalling refreshes.
func initWeather(cfg *config.Config) weather.Provider {
	if cfg.Weather.Provider != "open-meteo" {
		return weather.StaticProvider{}
	}
	return weather.NewBreakerProvider(
		weather.NewOpenMeteoProvider(cfg.Weather.BaseURL, cfg.Weather.Timeout),
		resilience.DefaultBreakerConfig("open-meteo"),
		logging.Logger(),
	)
}

// initAuth returns the auth middleware and, outside production, a token
// issuer for the development token endpoint.
func initAuth(cfg *config.Config) (*auth.Middleware, *auth.Issuer, error) {
	mode, err := auth.ParseMode(cfg.Auth.Mode)
	if err != nil {
		return nil, nil, err
	}

	if mode == auth.ModeNone {
		logging.Warn().Str("header", auth.UserIDHeader).Msg("Authentication disabled: trusting user ID header")
		return auth.NewMiddleware(mode, nil), nil, nil
	}

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return nil, nil, fmt.Errorf("create jwt verifier: %w", err)
	}

	var issuer *auth.Issuer
	if cfg.Server.Environment != "production" {
		issuer, err = auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("create jwt issuer: %w", err)
		}
	}
	return auth.NewMiddleware(mode, verifier), issuer, nil
}
