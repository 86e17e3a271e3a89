// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Item is a recommendation item. Exactly one of Movie or Music is set,
// matching Domain. Identity is ID.
//
// Genre holds the display string ("Sci-Fi, Drama"); use Genres for the
// parsed list.
type Item struct {
	ID          string        `json:"id"`
	Domain      Domain        `json:"type"`
	Title       string        `json:"title"`
	ImageURL    string        `json:"image_url"`
	Description string        `json:"description"`
	Rating      float64       `json:"rating"`
	Genre       string        `json:"genre"`
	Movie       *MovieDetails `json:"movie,omitempty"`
	Music       *MusicDetails `json:"music,omitempty"`
}

// MovieDetails holds the movie-only fields.
type MovieDetails struct {
	Director          string   `json:"director"`
	Year              int      `json:"year"`
	DurationMinutes   int      `json:"duration"`
	StreamingServices []string `json:"streaming_services,omitempty"`
}

// MusicDetails holds the music-only fields. Duration is "m:ss".
type MusicDetails struct {
	Artist     string   `json:"artist"`
	Duration   string   `json:"duration"`
	Album      string   `json:"album"`
	Moods      []string `json:"moods,omitempty"`
	Activities []string `json:"activities,omitempty"`
}

// Errors returned by Item.Validate.
var (
	ErrItemMissingID      = errors.New("item id is required")
	ErrItemMissingTitle   = errors.New("item title is required")
	ErrItemVariantMissing = errors.New("item variant details do not match domain")
)

// Genres splits the display genre string into trimmed, non-empty names.
func (it *Item) Genres() []string {
	return SplitGenres(it.Genre)
}

// SplitGenres parses a comma or slash separated genre string.
func SplitGenres(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the structural invariants a data source must uphold.
func (it *Item) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return ErrItemMissingID
	}
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w (id=%s)", ErrItemMissingTitle, it.ID)
	}
	switch it.Domain {
	case DomainMovie:
		if it.Movie == nil || it.Music != nil {
			return fmt.Errorf("%w (id=%s)", ErrItemVariantMissing, it.ID)
		}
	case DomainMusic:
		if it.Music == nil || it.Movie != nil {
			return fmt.Errorf("%w (id=%s)", ErrItemVariantMissing, it.ID)
		}
	default:
		return fmt.Errorf("item %s: unknown domain %q", it.ID, it.Domain)
	}
	return nil
}

// Clone returns a deep copy of the item.
//
//nolint:gocritic // hugeParam: value receiver keeps Item usable as a value object
func (it Item) Clone() Item {
	out := it
	if it.Movie != nil {
		m := *it.Movie
		m.StreamingServices = cloneStrings(it.Movie.StreamingServices)
		out.Movie = &m
	}
	if it.Music != nil {
		m := *it.Music
		m.Moods = cloneStrings(it.Music.Moods)
		m.Activities = cloneStrings(it.Music.Activities)
		out.Music = &m
	}
	return out
}

// CloneItems deep-copies a slice of items. A nil slice stays nil.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
