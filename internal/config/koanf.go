// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodmate/config.yaml",
	"/etc/moodmate/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8420,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			Mode:     "jwt",
			Issuer:   "moodmate",
			TokenTTL: 24 * time.Hour,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Credits: CreditsConfig{
			InitialBalance:          10,
			AdCooldown:              30 * time.Second,
			RefundOnGenerationError: false,
		},
		Recommend: RecommendConfig{
			MaxItems:        5,
			Seed:            42,
			MoodWeight:      0.5,
			WeatherWeight:   0.3,
			RatingWeight:    0.2,
			DiversityLambda: 0.7,
			Timeout:         10 * time.Second,
		},
		Weather: WeatherConfig{
			Provider: "static",
			BaseURL:  "https://api.open-meteo.com",
			Timeout:  10 * time.Second,
		},
		Catalog: CatalogConfig{
			Source:           "static",
			TMDbBaseURL:      "https://api.themoviedb.org/3",
			TMDbImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Timeout:          15 * time.Second,
			CacheEnabled:     false,
			CacheTTL:         10 * time.Minute,
			CacheSize:        256,
		},
		Storage: StorageConfig{
			Backend: "memory",
			Path:    "/data/moodmate",
		},
		WAL: WALConfig{
			RetryInterval:   15 * time.Second,
			MaxRetries:      10,
			InitialBackoff:  time.Second,
			MaxBackoff:      5 * time.Minute,
			CompactInterval: time.Hour,
		},
		Session: SessionConfig{
			IdleTimeout:   30 * time.Minute,
			SweepInterval: 5 * time.Minute,
			RecentLimit:   10,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"auth_mode":  "auth.mode",
	"jwt_secret": "auth.jwt_secret",
	"jwt_issuer": "auth.issuer",
	"token_ttl":  "auth.token_ttl",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"initial_credits":            "credits.initial_balance",
	"ad_cooldown":                "credits.ad_cooldown",
	"refund_on_generation_error": "credits.refund_on_generation_error",

	"recommend_max_items":        "recommend.max_items",
	"recommend_seed":             "recommend.seed",
	"recommend_mood_weight":      "recommend.mood_weight",
	"recommend_weather_weight":   "recommend.weather_weight",
	"recommend_rating_weight":    "recommend.rating_weight",
	"recommend_diversity_lambda": "recommend.diversity_lambda",
	"recommend_timeout":          "recommend.timeout",

	"weather_provider": "weather.provider",
	"weather_base_url": "weather.base_url",
	"weather_timeout":  "weather.timeout",

	"catalog_source":        "catalog.source",
	"tmdb_api_key":          "catalog.tmdb_api_key",
	"tmdb_base_url":         "catalog.tmdb_base_url",
	"tmdb_image_base_url":   "catalog.tmdb_image_base_url",
	"catalog_timeout":       "catalog.timeout",
	"catalog_cache_enabled": "catalog.cache_enabled",
	"catalog_cache_ttl":     "catalog.cache_ttl",
	"catalog_cache_size":    "catalog.cache_size",

	"storage_backend": "storage.backend",
	"storage_path":    "storage.path",

	"wal_retry_interval":   "wal.retry_interval",
	"wal_max_retries":      "wal.max_retries",
	"wal_initial_backoff":  "wal.initial_backoff",
	"wal_max_backoff":      "wal.max_backoff",
	"wal_compact_interval": "wal.compact_interval",

	"session_idle_timeout":   "session.idle_timeout",
	"session_sweep_interval": "session.sweep_interval",
	"session_recent_limit":   "session.recent_limit",
}

// envTransformFunc maps an environment variable name to a koanf path.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - INITIAL_CREDITS -> credits.initial_balance
//   - TMDB_API_KEY -> catalog.tmdb_api_key
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
