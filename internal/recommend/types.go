// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/moodmate/internal/models"
)

// MaxK is the hard cap on items per generation.
const MaxK = 5

// Request is one generation request. All fields are read-only to the engine.
type Request struct {
	// Domain selects movies or music.
	Domain models.Domain `json:"domain"`

	// Mood is the user's current mood.
	Mood models.MoodSample `json:"mood"`

	// Weather may be nil, meaning no weather signal.
	Weather *models.WeatherSnapshot `json:"weather,omitempty"`

	// Movie is the active movie filter; read when Domain is movie.
	Movie models.MovieFilter `json:"movie"`

	// Music is the active music filter; read when Domain is music.
	Music models.MusicFilter `json:"music"`

	// K overrides Config.MaxItems when positive. Never exceeds MaxK.
	K int `json:"k,omitempty"`

	// RequestID is used for log correlation.
	RequestID string `json:"request_id,omitempty"`
}

// Clone returns a deep copy of the request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (r Request) Clone() Request {
	r.Weather = r.Weather.Clone()
	r.Movie = r.Movie.Clone()
	r.Music = r.Music.Clone()
	return r
}

// ScoredItem is an item with its combined score.
type ScoredItem struct {
	// Item is a private copy of the catalog item.
	Item models.Item `json:"item"`

	// Score is the combined score in [0, 1].
	Score float64 `json:"score"`

	// Scores is the per-scorer breakdown.
	Scores map[string]float64 `json:"scores,omitempty"`
}

// DataSource supplies the candidate pool for a request.
type DataSource interface {
	Query(ctx context.Context, req Request) ([]models.Item, error)
}

// Scorer rates one candidate. ok=false means "no signal" and removes the
// scorer from the weight normalization for that item.
type Scorer interface {
	Name() string
	Score(req *Request, item *models.Item) (score float64, ok bool)
}

// Reranker modifies a ranked list for diversity or other objectives.
type Reranker interface {
	// Name returns the reranker identifier (e.g., "mmr").
	Name() string

	// Rerank receives items sorted by relevance and returns up to k items.
	Rerank(ctx context.Context, items []ScoredItem, k int) []ScoredItem
}

// Metrics is a point-in-time view of engine counters.
type Metrics struct {
	Requests        int64     `json:"requests"`
	Errors          int64     `json:"errors"`
	EmptyResults    int64     `json:"empty_results"`
	LastGeneratedAt time.Time `json:"last_generated_at"`
}
