// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
	"github.com/tomtom215/moodmate/internal/resilience"
)

const maxErrorBodySize = 4 * 1024

// ErrUnsupportedDomain is returned by sources that serve a single domain.
var ErrUnsupportedDomain = errors.New("domain not supported by source")

// tmdbGenreIDs maps filter genre names to TMDb movie genre IDs.
var tmdbGenreIDs = map[string]int{
	"action":      28,
	"adventure":   12,
	"animation":   16,
	"comedy":      35,
	"crime":       80,
	"documentary": 99,
	"drama":       18,
	"family":      10751,
	"fantasy":     14,
	"history":     36,
	"horror":      27,
	"music":       10402,
	"mystery":     9648,
	"romance":     10749,
	"sci-fi":      878,
	"thriller":    53,
	"war":         10752,
	"western":     37,
}

// tmdbGenreNames is the display name for each TMDb genre ID.
var tmdbGenreNames = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
	27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance", 878: "Sci-Fi",
	53: "Thriller", 10752: "War", 37: "Western",
}

// TMDbConfig configures TMDbSource.
type TMDbConfig struct {
	APIKey       string
	BaseURL      string // e.g. https://api.themoviedb.org/3
	ImageBaseURL string // e.g. https://image.tmdb.org/t/p/w500
	Timeout      time.Duration
	Breaker      resilience.BreakerConfig
}

// TMDbSource queries The Movie Database for movies.
type TMDbSource struct {
	cfg     TMDbConfig
	client  *http.Client
	breaker *resilience.Breaker[[]models.Item]
	logger  zerolog.Logger
}

// NewTMDbSource creates a TMDb movie source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTMDbSource(cfg TMDbConfig, logger zerolog.Logger) *TMDbSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.ImageBaseURL = strings.TrimRight(cfg.ImageBaseURL, "/")
	if cfg.Breaker.Name == "" {
		cfg.Breaker = resilience.DefaultBreakerConfig("tmdb")
	}
	if cfg.Breaker.IsSuccessful == nil {
		cfg.Breaker.IsSuccessful = func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		}
	}

	return &TMDbSource{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: resilience.NewBreaker[[]models.Item](cfg.Breaker, logger),
		logger:  logger.With().Str("component", "tmdb").Logger(),
	}
}

type tmdbDiscoverResponse struct {
	Page    int         `json:"page"`
	Results []tmdbMovie `json:"results"`
}

type tmdbMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	GenreIDs    []int   `json:"genre_ids"`
}

// Query implements recommend.DataSource for the movie domain.
//
//nolint:gocritic // hugeParam: signature fixed by recommend.DataSource
func (s *TMDbSource) Query(ctx context.Context, req recommend.Request) ([]models.Item, error) {
	if req.Domain != models.DomainMovie {
		return nil, fmt.Errorf("tmdb: %w: %s", ErrUnsupportedDomain, req.Domain)
	}

	return s.breaker.Execute(func() ([]models.Item, error) {
		return s.discover(ctx, &req.Movie)
	})
}

func (s *TMDbSource) discover(ctx context.Context, filter *models.MovieFilter) ([]models.Item, error) {
	reqURL := fmt.Sprintf("%s/discover/movie?%s", s.cfg.BaseURL, discoverParams(s.cfg.APIKey, filter).Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("tmdb returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded tmdbDiscoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode tmdb response: %w", err)
	}

	items := make([]models.Item, 0, len(decoded.Results))
	for i := range decoded.Results {
		items = append(items, s.toItem(&decoded.Results[i]))
	}

	s.logger.Debug().Int("results", len(items)).Msg("tmdb discover complete")
	return items, nil
}

// discoverParams builds the /discover/movie query. Selected genres are ORed.
func discoverParams(apiKey string, f *models.MovieFilter) url.Values {
	params := url.Values{}
	params.Set("api_key", apiKey)
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("page", "1")

	if ids := genreIDs(f.Genres); len(ids) > 0 {
		params.Set("with_genres", strings.Join(ids, "|"))
	}
	if f.YearRange.Min > 0 {
		params.Set("primary_release_date.gte", fmt.Sprintf("%04d-01-01", f.YearRange.Min))
	}
	if f.YearRange.Max > 0 {
		params.Set("primary_release_date.lte", fmt.Sprintf("%04d-12-31", f.YearRange.Max))
	}
	if f.RuntimeRange.Min > 0 {
		params.Set("with_runtime.gte", strconv.Itoa(f.RuntimeRange.Min))
	}
	if f.RuntimeRange.Max > 0 {
		params.Set("with_runtime.lte", strconv.Itoa(f.RuntimeRange.Max))
	}
	return params
}

// genreIDs maps names to sorted TMDb IDs. Unknown names are skipped.
func genreIDs(genres []string) []string {
	ids := make([]int, 0, len(genres))
	for _, g := range genres {
		if id, ok := tmdbGenreIDs[strings.ToLower(strings.TrimSpace(g))]; ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	return out
}

func (s *TMDbSource) toItem(m *tmdbMovie) models.Item {
	names := make([]string, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		if name, ok := tmdbGenreNames[id]; ok {
			names = append(names, name)
		}
	}

	var image string
	if m.PosterPath != "" && s.cfg.ImageBaseURL != "" {
		image = s.cfg.ImageBaseURL + m.PosterPath
	}

	var year int
	if len(m.ReleaseDate) >= 4 {
		year, _ = strconv.Atoi(m.ReleaseDate[:4]) //nolint:errcheck // zero means unknown
	}

	return models.Item{
		ID:          "tmdb-" + strconv.Itoa(m.ID),
		Domain:      models.DomainMovie,
		Title:       m.Title,
		ImageURL:    image,
		Description: m.Overview,
		// TMDb votes are 0-10; items carry 0-5 stars.
		Rating: math.Round(m.VoteAverage*5) / 10,
		Genre:  strings.Join(names, ", "),
		Movie:  &models.MovieDetails{Year: year},
	}
}

// State returns the circuit breaker state.
func (s *TMDbSource) State() string {
	return s.breaker.State()
}

var _ recommend.DataSource = (*TMDbSource)(nil)
