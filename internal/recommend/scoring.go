// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package recommend

import (
	"math"
	"strings"

	"github.com/tomtom215/moodmate/internal/models"
)

// Scorer names, also used as keys in ScoredItem.Scores.
const (
	ScorerMood    = "mood"
	ScorerWeather = "weather"
	ScorerRating  = "rating"
)

// maxAffectDistance is the diagonal of the unit valence/arousal square.
var maxAffectDistance = math.Sqrt2

// affect is a point in valence/arousal space, both axes in [0, 1].
type affect struct {
	valence float64
	arousal float64
}

func (a affect) distance(b affect) float64 {
	dv := a.valence - b.valence
	da := a.arousal - b.arousal
	return math.Sqrt(dv*dv + da*da)
}

// similarity maps distance to [0, 1], 1 being identical.
func (a affect) similarity(b affect) float64 {
	return clamp01(1 - a.distance(b)/maxAffectDistance)
}

type genreProfile struct {
	name string
	affect
}

// genreProfiles is ordered so substring fallback matching is deterministic;
// longer names come before names they contain ("hip hop" before "pop").
var genreProfiles = []genreProfile{
	// Movies
	{"documentary", affect{0.50, 0.30}},
	{"film-noir", affect{0.25, 0.45}},
	{"animation", affect{0.80, 0.60}},
	{"adventure", affect{0.70, 0.80}},
	{"thriller", affect{0.30, 0.80}},
	{"romance", affect{0.75, 0.35}},
	{"mystery", affect{0.40, 0.55}},
	{"fantasy", affect{0.65, 0.60}},
	{"history", affect{0.40, 0.35}},
	{"western", affect{0.45, 0.55}},
	{"action", affect{0.60, 0.90}},
	{"comedy", affect{0.85, 0.60}},
	{"family", affect{0.80, 0.50}},
	{"horror", affect{0.20, 0.85}},
	{"sci-fi", affect{0.55, 0.70}},
	{"drama", affect{0.35, 0.40}},
	{"crime", affect{0.30, 0.60}},
	{"war", affect{0.20, 0.75}},

	// Music
	{"electronic", affect{0.65, 0.90}},
	{"alternative", affect{0.45, 0.70}},
	{"classical", affect{0.55, 0.20}},
	{"synthwave", affect{0.65, 0.75}},
	{"new age", affect{0.60, 0.15}},
	{"hip hop", affect{0.60, 0.80}},
	{"country", affect{0.60, 0.45}},
	{"ambient", affect{0.50, 0.10}},
	{"reggae", affect{0.75, 0.40}},
	{"indie", affect{0.55, 0.50}},
	{"metal", affect{0.30, 0.95}},
	{"latin", affect{0.80, 0.80}},
	{"lo-fi", affect{0.50, 0.20}},
	{"blues", affect{0.30, 0.30}},
	{"jazz", affect{0.60, 0.30}},
	{"folk", affect{0.50, 0.30}},
	{"rock", affect{0.55, 0.85}},
	{"soul", affect{0.60, 0.40}},
	{"r&b", affect{0.65, 0.45}},
	{"pop", affect{0.80, 0.70}},
}

var genreIndex = func() map[string]affect {
	m := make(map[string]affect, len(genreProfiles))
	for _, p := range genreProfiles {
		m[p.name] = p.affect
	}
	return m
}()

// lookupGenre resolves a genre name by exact match, then by the first
// known name contained in it ("Indie Pop" resolves to indie).
func lookupGenre(name string) (affect, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return affect{}, false
	}
	if a, ok := genreIndex[key]; ok {
		return a, true
	}
	for _, p := range genreProfiles {
		if strings.Contains(key, p.name) {
			return p.affect, true
		}
	}
	return affect{}, false
}

// itemProfile averages the profiles of the item's known genres.
func itemProfile(item *models.Item) (affect, bool) {
	var sum affect
	n := 0
	for _, g := range item.Genres() {
		if a, ok := lookupGenre(g); ok {
			sum.valence += a.valence
			sum.arousal += a.arousal
			n++
		}
	}
	if n == 0 {
		return affect{}, false
	}
	return affect{sum.valence / float64(n), sum.arousal / float64(n)}, true
}

// MoodScorer rates how well an item's genres fit the user's mood.
type MoodScorer struct{}

// Name implements Scorer.
func (MoodScorer) Name() string { return ScorerMood }

// Score implements Scorer. Items with no known genre report no signal.
func (MoodScorer) Score(req *Request, item *models.Item) (float64, bool) {
	profile, ok := itemProfile(item)
	if !ok {
		return 0, false
	}
	mood := affect{req.Mood.Valence(), req.Mood.Arousal()}
	return mood.similarity(profile), true
}

// weatherTargets is the ambience each condition favors.
var weatherTargets = map[models.WeatherCondition]affect{
	models.ConditionClear:  {0.80, 0.70},
	models.ConditionCloudy: {0.50, 0.40},
	models.ConditionRainy:  {0.35, 0.25},
	models.ConditionStormy: {0.30, 0.85},
}

// Temperature bands in °C.
const (
	warmThresholdC = 25.0
	coldThresholdC = 10.0
	bandShift      = 0.1
)

// weatherTarget returns the favored ambience for a snapshot.
func weatherTarget(w *models.WeatherSnapshot) (affect, bool) {
	target, ok := weatherTargets[w.Condition]
	if !ok {
		return affect{}, false
	}
	switch {
	case w.TemperatureC >= warmThresholdC:
		target.arousal += bandShift
	case w.TemperatureC < coldThresholdC:
		target.arousal -= bandShift
	}
	target.arousal = clamp01(target.arousal)
	return target, true
}

// WeatherScorer rates how well an item fits the current weather.
type WeatherScorer struct{}

// Name implements Scorer.
func (WeatherScorer) Name() string { return ScorerWeather }

// Score implements Scorer. A nil snapshot reports no signal.
func (WeatherScorer) Score(req *Request, item *models.Item) (float64, bool) {
	if req.Weather == nil {
		return 0, false
	}
	target, ok := weatherTarget(req.Weather)
	if !ok {
		return 0, false
	}
	profile, ok := itemProfile(item)
	if !ok {
		return 0, false
	}
	return target.similarity(profile), true
}

// RatingScorer maps the 0-5 star rating to [0, 1].
type RatingScorer struct{}

// Name implements Scorer.
func (RatingScorer) Name() string { return ScorerRating }

// Score implements Scorer.
func (RatingScorer) Score(_ *Request, item *models.Item) (float64, bool) {
	return clamp01(item.Rating / 5), true
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

var (
	_ Scorer = MoodScorer{}
	_ Scorer = WeatherScorer{}
	_ Scorer = RatingScorer{}
)
