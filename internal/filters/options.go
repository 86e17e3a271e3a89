// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package filters

// Options lists the selectable values for both filter panels.
type Options struct {
	MovieGenres       []string `json:"movie_genres"`
	StreamingServices []string `json:"streaming_services"`
	MusicGenres       []string `json:"music_genres"`
	MusicMoods        []string `json:"music_moods"`
	MusicActivities   []string `json:"music_activities"`
	MinYear           int      `json:"min_year"`
	MaxYear           int      `json:"max_year"`
	MinRuntime        int      `json:"min_runtime"`
	MaxRuntime        int      `json:"max_runtime"`
}

// Selectable bounds for the movie ranges.
const (
	OptionMinYear    = 1900
	OptionMaxYear    = 2030
	OptionMinRuntime = 0
	OptionMaxRuntime = 300
)

var movieGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Fantasy", "Horror", "Mystery", "Romance", "Sci-Fi", "Thriller",
}

var streamingServices = []string{
	"Netflix", "Amazon Prime", "Disney+", "Hulu", "HBO Max", "Apple TV+",
}

var musicGenres = []string{
	"Pop", "Rock", "Hip Hop", "R&B", "Country", "Electronic", "Jazz",
	"Classical", "Indie", "Folk", "Metal", "Reggae", "Latin",
}

var musicMoods = []string{
	"Happy", "Sad", "Relaxed", "Energetic", "Focused", "Romantic", "Angry", "Nostalgic",
}

var musicActivities = []string{
	"Workout", "Study", "Relaxation", "Party", "Commute", "Sleep", "Work", "Meditation",
}

// AllOptions returns a copy of every option list.
func AllOptions() Options {
	return Options{
		MovieGenres:       append([]string(nil), movieGenres...),
		StreamingServices: append([]string(nil), streamingServices...),
		MusicGenres:       append([]string(nil), musicGenres...),
		MusicMoods:        append([]string(nil), musicMoods...),
		MusicActivities:   append([]string(nil), musicActivities...),
		MinYear:           OptionMinYear,
		MaxYear:           OptionMaxYear,
		MinRuntime:        OptionMinRuntime,
		MaxRuntime:        OptionMaxRuntime,
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
