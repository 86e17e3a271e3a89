// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package recommend implements the mood and weather aware recommendation engine.
//
// # Pipeline
//
// Generate runs a fixed pipeline for one domain (movie or music):
//
//  1. Query the DataSource for the candidate pool
//  2. Validate the pool (IDs, titles, domain, duplicates)
//  3. Apply the active filter for the domain
//  4. Score every candidate with the weighted scorers
//  5. Sort by descending score, breaking ties with the seeded RNG
//  6. Apply registered rerankers (MMR genre diversity)
//  7. Truncate to K (never more than MaxK)
//
// # Scorers
//
//   - mood: distance between the mood's valence/arousal and the item's genre profile
//   - weather: distance between the weather ambience and the genre profile
//   - rating: rating / 5
//
// Weights are normalized at runtime over the scorers that produced a signal,
// so a nil weather snapshot simply drops the weather term.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), source, logger)
//	engine.RegisterReranker(reranking.NewMMR(0.7))
//
//	items, err := engine.Generate(ctx, recommend.Request{
//	    Domain:  models.DomainMovie,
//	    Mood:    moodState.Current(),
//	    Weather: weatherState.Current(),
//	    Movie:   movieFilters.Active(),
//	})
//
// Failures of the data source surface as *GenerationError. The engine keeps no
// cache between calls; wrap the DataSource with catalog.CachedSource to opt in.
//
// # Thread Safety
//
// The engine is safe for concurrent use. Generate never mutates the request.
package recommend
