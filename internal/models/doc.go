// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package models defines the value types shared across MoodMate.

Key Components:

  - MoodSample: a happiness/energy self-report on a 1-10 scale
  - WeatherSnapshot: the last fetched weather reading (nil means "no signal")
  - Item: a recommendation item with Movie or Music variant details
  - MovieFilter / MusicFilter: user-chosen constraints for each domain
  - APIResponse: the JSON envelope used by every HTTP endpoint

Value Semantics:

Items and filters are treated as immutable once produced. Every type that
carries a slice or map exposes a Clone method, and the packages that own
state (mood, favorites, swipe) hand out clones rather than shared backing
arrays.
*/
package models
