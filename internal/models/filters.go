// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package models

import (
	"fmt"
	"strings"
)

// Default movie filter ranges.
const (
	DefaultMinYear    = 1980
	DefaultMaxYear    = 2023
	DefaultMinRuntime = 60
	DefaultMaxRuntime = 180
)

// IntRange is an inclusive [Min, Max] range.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the range.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// MovieFilter constrains movie recommendations.
// Empty sets mean "no constraint".
type MovieFilter struct {
	Genres            []string `json:"genres"`
	YearRange         IntRange `json:"year_range"`
	RuntimeRange      IntRange `json:"runtime_range"`
	StreamingServices []string `json:"streaming_services"`
}

// MusicFilter constrains music recommendations.
// Artists is ordered; Mood and Activity are optional.
type MusicFilter struct {
	Genres   []string `json:"genres"`
	Mood     string   `json:"mood,omitempty"`
	Activity string   `json:"activity,omitempty"`
	Artists  []string `json:"artists"`
}

// DefaultMovieFilter returns the documented reset state.
func DefaultMovieFilter() MovieFilter {
	return MovieFilter{
		Genres:            []string{},
		YearRange:         IntRange{Min: DefaultMinYear, Max: DefaultMaxYear},
		RuntimeRange:      IntRange{Min: DefaultMinRuntime, Max: DefaultMaxRuntime},
		StreamingServices: []string{},
	}
}

// DefaultMusicFilter returns the documented reset state (everything unset).
func DefaultMusicFilter() MusicFilter {
	return MusicFilter{
		Genres:  []string{},
		Artists: []string{},
	}
}

// Validate enforces the range ordering invariants.
//
//nolint:gocritic // hugeParam: filters are passed by value for immutability
func (f MovieFilter) Validate() error {
	if f.YearRange.Min > f.YearRange.Max {
		return fmt.Errorf("year_range min (%d) must be <= max (%d)", f.YearRange.Min, f.YearRange.Max)
	}
	if f.RuntimeRange.Min > f.RuntimeRange.Max {
		return fmt.Errorf("runtime_range min (%d) must be <= max (%d)", f.RuntimeRange.Min, f.RuntimeRange.Max)
	}
	if f.RuntimeRange.Min < 0 {
		return fmt.Errorf("runtime_range min must be non-negative")
	}
	return nil
}

// Clone returns a deep copy.
//
//nolint:gocritic // hugeParam: filters are passed by value for immutability
func (f MovieFilter) Clone() MovieFilter {
	f.Genres = cloneStrings(f.Genres)
	f.StreamingServices = cloneStrings(f.StreamingServices)
	return f
}

// Validate checks that the music filter has no blank entries.
//
//nolint:gocritic // hugeParam: filters are passed by value for immutability
func (f MusicFilter) Validate() error {
	for _, a := range f.Artists {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("artists must not contain blank names")
		}
	}
	return nil
}

// Clone returns a deep copy.
//
//nolint:gocritic // hugeParam: filters are passed by value for immutability
func (f MusicFilter) Clone() MusicFilter {
	f.Genres = cloneStrings(f.Genres)
	f.Artists = cloneStrings(f.Artists)
	return f
}
