// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
)

const imageParams = "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"

var staticMovies = []models.Item{
	{
		ID:          "m1",
		Domain:      models.DomainMovie,
		Title:       "The Midnight Sky",
		Genre:       "Sci-Fi, Drama",
		Rating:      5.0,
		Description: "A lone scientist in the Arctic races to contact a crew of astronauts returning home to a mysterious global catastrophe.",
		ImageURL:    "https://images.pexels.com/photos/2150/sky-space-dark-galaxy.jpg" + imageParams,
		Movie: &models.MovieDetails{
			Director: "George Clooney", Year: 2020, DurationMinutes: 118,
			StreamingServices: []string{"Netflix"},
		},
	},
	{
		ID:          "m2",
		Domain:      models.DomainMovie,
		Title:       "Rainy Day in New York",
		Genre:       "Comedy, Romance",
		Rating:      4.2,
		Description: "A young couple arrives in New York for a weekend where they are met with bad weather and a series of adventures.",
		ImageURL:    "https://images.pexels.com/photos/2129796/pexels-photo-2129796.png" + imageParams,
		Movie: &models.MovieDetails{
			Director: "Woody Allen", Year: 2019, DurationMinutes: 92,
			StreamingServices: []string{"Amazon Prime"},
		},
	},
	{
		ID:          "m3",
		Domain:      models.DomainMovie,
		Title:       "Sunset Boulevard",
		Genre:       "Drama, Film-Noir",
		Rating:      4.8,
		Description: "A screenwriter is hired to rework a faded silent film star's script, only to find himself developing a dangerous relationship.",
		ImageURL:    "https://images.pexels.com/photos/2258536/pexels-photo-2258536.jpeg" + imageParams,
		Movie: &models.MovieDetails{
			Director: "Billy Wilder", Year: 1950, DurationMinutes: 110,
		},
	},
	{
		ID:          "m4",
		Domain:      models.DomainMovie,
		Title:       "Neon Nights",
		Genre:       "Thriller, Action",
		Rating:      4.6,
		Description: "A detective investigates a series of murders in a city where it never stops raining, and the neon lights never go out.",
		ImageURL:    "https://images.pexels.com/photos/1722183/pexels-photo-1722183.jpeg" + imageParams,
		Movie: &models.MovieDetails{
			Director: "Anna Rodriguez", Year: 2022, DurationMinutes: 125,
			StreamingServices: []string{"HBO Max", "Hulu"},
		},
	},
	{
		ID:          "m5",
		Domain:      models.DomainMovie,
		Title:       "Morning Joy",
		Genre:       "Drama, Family",
		Rating:      4.3,
		Description: "A family rediscovers what truly matters while spending a summer in a small coastal town.",
		ImageURL:    "https://images.pexels.com/photos/1671325/pexels-photo-1671325.jpeg" + imageParams,
		Movie: &models.MovieDetails{
			Director: "Michael Chen", Year: 2021, DurationMinutes: 105,
			StreamingServices: []string{"Disney+"},
		},
	},
}

var staticTracks = []models.Item{
	{
		ID:          "s1",
		Domain:      models.DomainMusic,
		Title:       "Summer Breeze",
		Genre:       "Indie Pop",
		Rating:      4.7,
		Description: "An upbeat summer anthem that captures the feeling of a perfect day at the beach with friends.",
		ImageURL:    "https://images.pexels.com/photos/1105666/pexels-photo-1105666.jpeg" + imageParams,
		Music: &models.MusicDetails{
			Artist: "The Ocean Waves", Duration: "3:42", Album: "Coastal Memories",
			Moods:      []string{"Happy", "Energetic"},
			Activities: []string{"Party", "Commute"},
		},
	},
	{
		ID:          "s2",
		Domain:      models.DomainMusic,
		Title:       "Rainy Reflections",
		Genre:       "Lo-fi, Ambient",
		Rating:      4.5,
		Description: "A soothing melody perfect for rainy days, studying, or quiet contemplation.",
		ImageURL:    "https://images.pexels.com/photos/3721941/pexels-photo-3721941.jpeg" + imageParams,
		Music: &models.MusicDetails{
			Artist: "Echo Chamber", Duration: "4:15", Album: "Weather Patterns",
			Moods:      []string{"Relaxed", "Focused", "Sad"},
			Activities: []string{"Study", "Relaxation", "Sleep"},
		},
	},
	{
		ID:          "s3",
		Domain:      models.DomainMusic,
		Title:       "Midnight Drive",
		Genre:       "Synthwave, Electronic",
		Rating:      4.8,
		Description: "An energetic electronic track that captures the essence of driving through a city at night.",
		ImageURL:    "https://images.pexels.com/photos/1694900/pexels-photo-1694900.jpeg" + imageParams,
		Music: &models.MusicDetails{
			Artist: "Neon Pulse", Duration: "3:55", Album: "After Hours",
			Moods:      []string{"Energetic", "Nostalgic"},
			Activities: []string{"Commute", "Workout", "Party"},
		},
	},
	{
		ID:          "s4",
		Domain:      models.DomainMusic,
		Title:       "Morning Serenity",
		Genre:       "Classical, New Age",
		Rating:      4.6,
		Description: "A peaceful piano composition designed to bring calm and clarity to your morning routine.",
		ImageURL:    "https://images.pexels.com/photos/1571442/pexels-photo-1571442.jpeg" + imageParams,
		Music: &models.MusicDetails{
			Artist: "Daybreak Collective", Duration: "4:30", Album: "First Light",
			Moods:      []string{"Relaxed", "Focused"},
			Activities: []string{"Meditation", "Study", "Work"},
		},
	},
	{
		ID:          "s5",
		Domain:      models.DomainMusic,
		Title:       "Electric Storm",
		Genre:       "Rock, Alternative",
		Rating:      4.4,
		Description: "A powerful rock anthem with driving guitars and thunderous drums, perfect for workouts or when you need motivation.",
		ImageURL:    "https://images.pexels.com/photos/1114690/pexels-photo-1114690.jpeg" + imageParams,
		Music: &models.MusicDetails{
			Artist: "Thunder & Lightning", Duration: "5:10", Album: "Weather Systems",
			Moods:      []string{"Energetic", "Angry"},
			Activities: []string{"Workout"},
		},
	},
}

// StaticSource serves the built-in catalog. Filtering and ranking are left
// to the engine.
type StaticSource struct {
	// Delay simulates upstream latency. Zero disables it.
	Delay time.Duration
}

// NewStaticSource returns a StaticSource with no delay.
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// Query implements recommend.DataSource.
//
//nolint:gocritic // hugeParam: signature fixed by recommend.DataSource
func (s *StaticSource) Query(ctx context.Context, req recommend.Request) ([]models.Item, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	items := StaticItems(req.Domain)
	if items == nil {
		return nil, fmt.Errorf("static catalog has no %q items", req.Domain)
	}
	return items, nil
}

// StaticItems returns a copy of the built-in catalog for a domain.
func StaticItems(domain models.Domain) []models.Item {
	switch domain {
	case models.DomainMovie:
		return models.CloneItems(staticMovies)
	case models.DomainMusic:
		return models.CloneItems(staticTracks)
	default:
		return nil
	}
}

var _ recommend.DataSource = (*StaticSource)(nil)
