// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package session holds the per-user state behind the HTTP API.
//
// A Session bundles mood, weather, credits, favorites, both filter panels,
// one swipe controller per domain and the recent recommendations list.
// Sessions share no mutable state; each component guards itself.
//
// Manager opens sessions on demand, restoring favorites and the credit
// balance from persistence, and closes them explicitly or after an idle
// timeout. Durable mutations go through the Persistence passed in Deps,
// normally the write-behind wal.Writer.
package session
