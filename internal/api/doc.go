// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package api exposes MoodMate over HTTP using the Chi router.

Every response uses the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "request_id": "...", "warnings": [...]}
	}

# Routes

Public:
  - GET /api/v1/health/live, GET /api/v1/health/ready
  - GET /metrics (Prometheus)
  - POST /api/v1/auth/token (development only, when an issuer is configured)

Authenticated (rate limited, /api/v1 prefix):
  - GET|POST /mood, GET /mood/history
  - GET /weather, POST /weather/refresh
  - GET /credits, GET /credits/offers, POST /credits/purchase|ad|subscribe
  - GET /filters/options, GET|PUT /filters/{domain},
    POST /filters/{domain}/apply|discard|reset
  - POST /recommendations/{domain}/generate, GET /recommendations/{domain},
    POST /recommendations/{domain}/decide, POST /recommendations/{domain}/undo,
    GET /recommendations/recent
  - GET|POST /favorites, DELETE /favorites/{id}, POST /favorites/{id}/share

# Error Mapping

Domain errors are translated in one place (errors.go):

	credits.ErrInsufficientCredits   402 INSUFFICIENT_CREDITS
	recommend.GenerationError        502 GENERATION_ERROR
	swipe busy/in-flight/stale       409 CONFLICT
	validation failures              400 VALIDATION_ERROR
	weather.ErrProviderUnavailable   503 WEATHER_UNAVAILABLE
	credits.ErrAdCooldown            429 AD_COOLDOWN

Mutations whose durable write was deferred by the write-behind queue return
202 with the result and a "queued" warning. A denied location permission is
not an error: the response is 200 with null data and a warning.
*/
package api
