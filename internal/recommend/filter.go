// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package recommend

import (
	"strings"

	"github.com/tomtom215/moodmate/internal/models"
)

// applyFilter keeps the items that pass the active filter for req.Domain.
// The input slice is not modified.
func applyFilter(req *Request, items []models.Item) []models.Item {
	out := make([]models.Item, 0, len(items))
	for i := range items {
		var keep bool
		switch req.Domain {
		case models.DomainMovie:
			keep = matchMovie(&req.Movie, &items[i])
		case models.DomainMusic:
			keep = matchMusic(&req.Music, &items[i])
		}
		if keep {
			out = append(out, items[i])
		}
	}
	return out
}

func matchMovie(f *models.MovieFilter, item *models.Item) bool {
	m := item.Movie
	if m == nil {
		return false
	}
	if !matchGenres(f.Genres, item.Genres()) {
		return false
	}
	if m.Year > 0 && !f.YearRange.Contains(m.Year) {
		return false
	}
	if m.DurationMinutes > 0 && !f.RuntimeRange.Contains(m.DurationMinutes) {
		return false
	}
	// Items without availability data are kept.
	if len(f.StreamingServices) > 0 && len(m.StreamingServices) > 0 &&
		!intersectsFold(f.StreamingServices, m.StreamingServices) {
		return false
	}
	return true
}

func matchMusic(f *models.MusicFilter, item *models.Item) bool {
	m := item.Music
	if m == nil {
		return false
	}
	if !matchGenres(f.Genres, item.Genres()) {
		return false
	}
	if f.Mood != "" && len(m.Moods) > 0 && !containsFold(m.Moods, f.Mood) {
		return false
	}
	if f.Activity != "" && len(m.Activities) > 0 && !containsFold(m.Activities, f.Activity) {
		return false
	}
	if len(f.Artists) > 0 && !containsFold(f.Artists, m.Artist) {
		return false
	}
	return true
}

// matchGenres reports whether any wanted genre matches any item genre.
// An empty wanted set matches everything. "Pop" matches "Indie Pop".
func matchGenres(wanted, have []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		for _, h := range have {
			h = strings.ToLower(h)
			if h == w || strings.Contains(h, w) {
				return true
			}
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

func intersectsFold(a, b []string) bool {
	for _, s := range a {
		if containsFold(b, s) {
			return true
		}
	}
	return false
}
