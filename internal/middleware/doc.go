// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: propagates or generates X-Request-ID and stores it in the
    logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - Compression: gzip for clients that accept it
  - SecurityHeaders: nosniff, frame denial, no-store and HSTS behind TLS

All middleware uses the chi signature func(http.Handler) http.Handler so it
can be passed straight to r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.SecurityHeaders)
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(middleware.Compression)
	})

PrometheusMetrics labels requests with the matched chi route pattern
("/api/v1/favorites/{id}") rather than the raw path, which keeps label
cardinality bounded. Requests that match no route are labelled "unmatched".
*/
package middleware
