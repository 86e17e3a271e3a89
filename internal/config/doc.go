// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package config provides centralized configuration management for MoodMate.

# Configuration Sources

Configuration is layered with Koanf v2 (later layers win):
  - Built-in defaults (defaultConfig)
  - An optional YAML file
  - Environment variables

# Environment Variables

HTTP Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8420)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development or production

Authentication:
  - AUTH_MODE: jwt (default) or none
  - JWT_SECRET: HS256 signing secret, at least 32 characters in jwt mode
  - JWT_ISSUER, TOKEN_TTL

Credits:
  - INITIAL_CREDITS (default 10)
  - AD_COOLDOWN (default 30s)
  - REFUND_ON_GENERATION_ERROR (default false)

Recommendations and data sources:
  - RECOMMEND_MAX_ITEMS (1-5, default 5), RECOMMEND_SEED, RECOMMEND_*_WEIGHT
  - WEATHER_PROVIDER: static or open-meteo
  - CATALOG_SOURCE: static or tmdb, TMDB_API_KEY
  - CATALOG_CACHE_ENABLED, CATALOG_CACHE_TTL

Persistence:
  - STORAGE_BACKEND: memory or badger, STORAGE_PATH
  - WAL_RETRY_INTERVAL, WAL_MAX_RETRIES, WAL_INITIAL_BACKOFF, WAL_MAX_BACKOFF

# Validation

Load returns an error describing the first invalid field, for example
"recommend.max_items must be between 1 and 5, got 9".
*/
package config
