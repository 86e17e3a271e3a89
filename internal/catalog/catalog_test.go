// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/recommend"
	"github.com/tomtom215/moodmate/internal/resilience"
)

func movieReq() recommend.Request {
	return recommend.Request{Domain: models.DomainMovie, Movie: models.DefaultMovieFilter()}
}

func TestStaticSource(t *testing.T) {
	src := NewStaticSource()

	for _, d := range models.Domains {
		items, err := src.Query(context.Background(), recommend.Request{Domain: d})
		if err != nil {
			t.Fatalf("Query(%s) error = %v", d, err)
		}
		if len(items) != 5 {
			t.Errorf("Query(%s) returned %d items, want 5", d, len(items))
		}
		for i := range items {
			if err := items[i].Validate(); err != nil {
				t.Errorf("invalid static item: %v", err)
			}
			if items[i].Domain != d {
				t.Errorf("item %s has domain %s", items[i].ID, items[i].Domain)
			}
		}
	}

	items, _ := src.Query(context.Background(), movieReq())
	items[0].Title = "changed"
	again, _ := src.Query(context.Background(), movieReq())
	if again[0].Title != "The Midnight Sky" {
		t.Error("static catalog was mutated through a returned item")
	}

	if _, err := src.Query(context.Background(), recommend.Request{Domain: "podcast"}); err == nil {
		t.Error("expected error for unknown domain")
	}
}

func TestStaticSource_DelayHonorsContext(t *testing.T) {
	src := &StaticSource{Delay: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := src.Query(ctx, movieReq()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want deadline exceeded, got %v", err)
	}
}

func TestDiscoverParams(t *testing.T) {
	f := models.MovieFilter{
		Genres:       []string{"Drama", "sci-fi", "Polka"},
		YearRange:    models.IntRange{Min: 1990, Max: 2005},
		RuntimeRange: models.IntRange{Min: 80, Max: 140},
	}
	p := discoverParams("key", &f)

	checks := map[string]string{
		"api_key":                  "key",
		"sort_by":                  "popularity.desc",
		"with_genres":              "18|878",
		"primary_release_date.gte": "1990-01-01",
		"primary_release_date.lte": "2005-12-31",
		"with_runtime.gte":         "80",
		"with_runtime.lte":         "140",
	}
	for k, want := range checks {
		if got := p.Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

const discoverBody = `{"page":1,"results":[
 {"id":157336,"title":"Interstellar","overview":"Space.","poster_path":"/p.jpg","vote_average":8.4,"release_date":"2014-11-05","genre_ids":[12,18,878]},
 {"id":1,"title":"Unknown Date","vote_average":6,"release_date":"","genre_ids":[]}
]}`

func newTMDb(t *testing.T, url string, breaker resilience.BreakerConfig) *TMDbSource {
	t.Helper()
	return NewTMDbSource(TMDbConfig{
		APIKey:       "test-key",
		BaseURL:      url + "/",
		ImageBaseURL: "https://img.example/w500",
		Timeout:      time.Second,
		Breaker:      breaker,
	}, zerolog.Nop())
}

func TestTMDbSource_Query(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("missing api key")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(discoverBody))
	}))
	defer server.Close()

	src := newTMDb(t, server.URL, resilience.DefaultBreakerConfig("tmdb-test"))
	items, err := src.Query(context.Background(), movieReq())
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}

	got := items[0]
	if got.ID != "tmdb-157336" || got.Title != "Interstellar" {
		t.Errorf("unexpected item %+v", got)
	}
	if got.Genre != "Adventure, Drama, Sci-Fi" {
		t.Errorf("Genre = %q", got.Genre)
	}
	if got.Rating != 4.2 {
		t.Errorf("Rating = %v, want 4.2", got.Rating)
	}
	if got.ImageURL != "https://img.example/w500/p.jpg" {
		t.Errorf("ImageURL = %q", got.ImageURL)
	}
	if got.Movie == nil || got.Movie.Year != 2014 {
		t.Errorf("Movie = %+v", got.Movie)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("item invalid: %v", err)
	}
	if items[1].Movie.Year != 0 || items[1].ImageURL != "" {
		t.Errorf("missing fields should stay zero: %+v", items[1])
	}
}

func TestTMDbSource_RejectsMusic(t *testing.T) {
	src := newTMDb(t, "http://127.0.0.1:0", resilience.DefaultBreakerConfig("tmdb-music"))
	_, err := src.Query(context.Background(), recommend.Request{Domain: models.DomainMusic})
	if !errors.Is(err, ErrUnsupportedDomain) {
		t.Errorf("want ErrUnsupportedDomain, got %v", err)
	}
}

func TestTMDbSource_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := resilience.DefaultBreakerConfig("tmdb-trip")
	cfg.MinRequests = 2
	cfg.FailureRatio = 0.5
	src := newTMDb(t, server.URL, cfg)

	for i := 0; i < 2; i++ {
		if _, err := src.Query(context.Background(), movieReq()); err == nil {
			t.Fatal("expected upstream error")
		}
	}
	if src.State() != "open" {
		t.Fatalf("State() = %s, want open", src.State())
	}
	if _, err := src.Query(context.Background(), movieReq()); !resilience.IsRejection(err) {
		t.Errorf("want breaker rejection, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("upstream called %d times, want 2", calls.Load())
	}
}

type countingSource struct {
	calls atomic.Int32
	err   error
}

func (c *countingSource) Query(_ context.Context, req recommend.Request) ([]models.Item, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return StaticItems(req.Domain), nil
}

func TestRouter(t *testing.T) {
	movies := &countingSource{}
	r := NewRouter(map[models.Domain]recommend.DataSource{
		models.DomainMovie: movies,
		models.DomainMusic: nil,
	})

	if _, err := r.Query(context.Background(), movieReq()); err != nil {
		t.Fatalf("Query(movie) error = %v", err)
	}
	if movies.calls.Load() != 1 {
		t.Error("movie source not called")
	}
	if _, err := r.Query(context.Background(), recommend.Request{Domain: models.DomainMusic}); !errors.Is(err, ErrUnsupportedDomain) {
		t.Errorf("want ErrUnsupportedDomain, got %v", err)
	}
}

func TestCachedSource(t *testing.T) {
	inner := &countingSource{}
	c := NewCachedSource(inner, 8, time.Minute)

	req := movieReq()
	first, err := c.Query(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	first[0].Title = "mutated"

	second, err := c.Query(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls.Load() != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls.Load())
	}
	if second[0].Title == "mutated" {
		t.Error("cache returned an aliased item")
	}

	// Mood changes share the entry; filter changes do not.
	req.Mood = models.MoodSample{Happiness: 1, Energy: 1}
	if _, err := c.Query(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	req.Movie.YearRange.Min = 2000
	if _, err := c.Query(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if inner.calls.Load() != 2 {
		t.Errorf("inner called %d times, want 2", inner.calls.Load())
	}

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 2 || size != 2 {
		t.Errorf("Stats() = %d/%d/%d, want 2/2/2", hits, misses, size)
	}

	c.Purge()
	if _, _, size := c.Stats(); size != 0 {
		t.Errorf("size after Purge = %d", size)
	}
}

func TestCachedSource_ErrorsNotCached(t *testing.T) {
	inner := &countingSource{err: errors.New("down")}
	c := NewCachedSource(inner, 8, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.Query(context.Background(), movieReq()); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls.Load() != 2 {
		t.Errorf("inner called %d times, want 2", inner.calls.Load())
	}
}
