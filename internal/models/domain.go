// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package models

import (
	"fmt"
	"strings"
)

// Domain identifies which catalog a recommendation comes from.
type Domain string

const (
	// DomainMovie covers films.
	DomainMovie Domain = "movie"
	// DomainMusic covers tracks.
	DomainMusic Domain = "music"
)

// Domains lists every supported domain in display order.
var Domains = []Domain{DomainMovie, DomainMusic}

// String returns the wire name of the domain.
func (d Domain) String() string {
	return string(d)
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	return d == DomainMovie || d == DomainMusic
}

// ParseDomain converts a case-insensitive name into a Domain.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown domain %q (expected movie or music)", s)
	}
	return d, nil
}

// FavoriteFilter selects which favorites List returns.
type FavoriteFilter string

const (
	FavoritesAll   FavoriteFilter = "all"
	FavoritesMovie FavoriteFilter = "movie"
	FavoritesMusic FavoriteFilter = "music"
)

// ParseFavoriteFilter accepts "", "all", "movie" or "music".
// An empty string selects all favorites.
func ParseFavoriteFilter(s string) (FavoriteFilter, error) {
	switch FavoriteFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FavoritesAll:
		return FavoritesAll, nil
	case FavoritesMovie:
		return FavoritesMovie, nil
	case FavoritesMusic:
		return FavoritesMusic, nil
	default:
		return "", fmt.Errorf("unknown favorites filter %q", s)
	}
}

// Matches reports whether a favorite of the given type passes the filter.
func (f FavoriteFilter) Matches(d Domain) bool {
	switch f {
	case FavoritesAll, "":
		return true
	case FavoritesMovie:
		return d == DomainMovie
	case FavoritesMusic:
		return d == DomainMusic
	default:
		return false
	}
}
