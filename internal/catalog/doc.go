// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package catalog provides recommend.DataSource implementations.

Sources:
  - StaticSource: the built-in catalog of five movies and five tracks
  - TMDbSource: The Movie Database /discover/movie, behind a circuit breaker
  - Router: dispatches a request to the source registered for its domain
  - CachedSource: opt-in TTL LRU keyed by domain and filter fingerprint

Typical wiring:

	static := catalog.NewStaticSource()
	router := catalog.NewRouter(map[models.Domain]recommend.DataSource{
	    models.DomainMovie: catalog.NewTMDbSource(cfg, logger),
	    models.DomainMusic: static,
	})
	source := catalog.NewCachedSource(router, 256, 10*time.Minute)

Every source returns items owned by the caller; mutating them never affects
later queries.
*/
package catalog
