// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2, later layers win):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (config.yaml, /etc/moodmate/config.yaml or CONFIG_PATH)
//  3. Environment variables (see envMappings in koanf.go)
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Auth       AuthConfig       `koanf:"auth"`
	Security   SecurityConfig   `koanf:"security"`
	Credits    CreditsConfig    `koanf:"credits"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Weather    WeatherConfig    `koanf:"weather"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Storage    StorageConfig    `koanf:"storage"`
	WAL        WALConfig        `koanf:"wal"`
	Session    SessionConfig    `koanf:"session"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns host:port.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig feeds logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// AuthConfig configures how the user ID is obtained.
//
// Mode "jwt" verifies HS256 bearer tokens and uses the sub claim.
// Mode "none" trusts the X-User-ID header and is for local development only.
type AuthConfig struct {
	Mode      string        `koanf:"mode"`
	JWTSecret string        `koanf:"jwt_secret"`
	Issuer    string        `koanf:"issuer"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// SecurityConfig holds CORS and HTTP rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CreditsConfig configures the credit ledger and grants.
type CreditsConfig struct {
	InitialBalance int           `koanf:"initial_balance"`
	AdCooldown     time.Duration `koanf:"ad_cooldown"`

	// RefundOnGenerationError returns the reserved credit when the data
	// source fails. Off by default: a failed generation still costs a credit.
	RefundOnGenerationError bool `koanf:"refund_on_generation_error"`
}

// RecommendConfig mirrors recommend.Config for the file/env layer.
type RecommendConfig struct {
	MaxItems        int           `koanf:"max_items"`
	Seed            int64         `koanf:"seed"`
	MoodWeight      float64       `koanf:"mood_weight"`
	WeatherWeight   float64       `koanf:"weather_weight"`
	RatingWeight    float64       `koanf:"rating_weight"`
	DiversityLambda float64       `koanf:"diversity_lambda"`
	Timeout         time.Duration `koanf:"timeout"`
}

// WeatherConfig selects and configures the weather provider.
type WeatherConfig struct {
	Provider string        `koanf:"provider"` // static | open-meteo
	BaseURL  string        `koanf:"base_url"`
	Timeout  time.Duration `koanf:"timeout"`
}

// CatalogConfig selects the recommendation data source.
type CatalogConfig struct {
	Source           string        `koanf:"source"` // static | tmdb
	TMDbAPIKey       string        `koanf:"tmdb_api_key"`
	TMDbBaseURL      string        `koanf:"tmdb_base_url"`
	TMDbImageBaseURL string        `koanf:"tmdb_image_base_url"`
	Timeout          time.Duration `koanf:"timeout"`
	CacheEnabled     bool          `koanf:"cache_enabled"`
	CacheTTL         time.Duration `koanf:"cache_ttl"`
	CacheSize        int           `koanf:"cache_size"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `koanf:"backend"` // memory | badger
	Path    string `koanf:"path"`
}

// WALConfig configures the write-behind retry loop.
type WALConfig struct {
	RetryInterval  time.Duration `koanf:"retry_interval"`
	MaxRetries     int           `koanf:"max_retries"`
	InitialBackoff time.Duration `koanf:"initial_backoff"`
	MaxBackoff     time.Duration `koanf:"max_backoff"`

	// CompactInterval is the BadgerDB value log GC period. Zero disables it.
	CompactInterval time.Duration `koanf:"compact_interval"`
}

// SessionConfig controls per-user session lifetime.
type SessionConfig struct {
	IdleTimeout   time.Duration `koanf:"idle_timeout"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	RecentLimit   int           `koanf:"recent_limit"`
}

// SupervisorConfig mirrors supervisor.TreeConfig.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Load is the entry point used by cmd/server.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Validate checks cross-field constraints after all layers are merged.
//
//nolint:gocyclo // flat list of independent checks
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Auth.Mode {
	case "jwt":
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("auth.jwt_secret must be at least 32 characters when auth.mode is jwt")
		}
	case "none":
		if strings.EqualFold(c.Server.Environment, "production") {
			return fmt.Errorf("auth.mode none is not allowed in production")
		}
	default:
		return fmt.Errorf("auth.mode must be jwt or none, got %q", c.Auth.Mode)
	}

	if !c.Security.RateLimitDisabled && c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("security.rate_limit_reqs must be positive")
	}

	if c.Credits.InitialBalance < 0 {
		return fmt.Errorf("credits.initial_balance must be non-negative")
	}
	if c.Credits.AdCooldown < 0 {
		return fmt.Errorf("credits.ad_cooldown must be non-negative")
	}

	if c.Recommend.MaxItems < 1 || c.Recommend.MaxItems > 5 {
		return fmt.Errorf("recommend.max_items must be between 1 and 5, got %d", c.Recommend.MaxItems)
	}
	if c.Recommend.DiversityLambda < 0 || c.Recommend.DiversityLambda > 1 {
		return fmt.Errorf("recommend.diversity_lambda must be between 0 and 1")
	}
	if c.Recommend.MoodWeight < 0 || c.Recommend.WeatherWeight < 0 || c.Recommend.RatingWeight < 0 {
		return fmt.Errorf("recommend weights must be non-negative")
	}

	switch c.Weather.Provider {
	case "static", "open-meteo":
	default:
		return fmt.Errorf("weather.provider must be static or open-meteo, got %q", c.Weather.Provider)
	}

	switch c.Catalog.Source {
	case "static":
	case "tmdb":
		if c.Catalog.TMDbAPIKey == "" {
			return fmt.Errorf("catalog.tmdb_api_key is required when catalog.source is tmdb")
		}
	default:
		return fmt.Errorf("catalog.source must be static or tmdb, got %q", c.Catalog.Source)
	}
	if c.Catalog.CacheEnabled && c.Catalog.CacheSize <= 0 {
		return fmt.Errorf("catalog.cache_size must be positive when caching is enabled")
	}

	switch c.Storage.Backend {
	case "memory":
	case "badger":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required when storage.backend is badger")
		}
	default:
		return fmt.Errorf("storage.backend must be memory or badger, got %q", c.Storage.Backend)
	}

	if c.WAL.RetryInterval <= 0 {
		return fmt.Errorf("wal.retry_interval must be positive")
	}
	if c.WAL.InitialBackoff <= 0 || c.WAL.MaxBackoff < c.WAL.InitialBackoff {
		return fmt.Errorf("wal.max_backoff must be >= wal.initial_backoff > 0")
	}

	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("session.idle_timeout must be positive")
	}
	if c.Session.RecentLimit < 0 {
		return fmt.Errorf("session.recent_limit must be non-negative")
	}

	return nil
}
