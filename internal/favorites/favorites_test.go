// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package favorites

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/models"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

func movieItem(id string) models.Item {
	return models.Item{
		ID: id, Domain: models.DomainMovie, Title: "Movie " + id, Genre: "Drama",
		Movie: &models.MovieDetails{Director: "Billy Wilder", Year: 1950, StreamingServices: []string{"Netflix"}},
	}
}

func trackItem(id string) models.Item {
	return models.Item{
		ID: id, Domain: models.DomainMusic, Title: "Track " + id, Genre: "Jazz",
		Music: &models.MusicDetails{Artist: "Echo Chamber", Duration: "4:15"},
	}
}

func ids(entries []Entry) string {
	parts := make([]string, len(entries))
	for i := range entries {
		parts[i] = entries[i].Item.ID
	}
	return strings.Join(parts, ",")
}

func TestStore_AddIsIdempotent(t *testing.T) {
	s := NewStore(fixedNow)

	if !s.Add(movieItem("m1"), models.DomainMovie) {
		t.Fatal("first Add should insert")
	}
	if s.Add(movieItem("m1"), models.DomainMovie) {
		t.Error("second Add should not insert")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.Add(models.Item{}, models.DomainMovie) {
		t.Error("item without ID should be rejected")
	}
	if s.Add(movieItem("m2"), "podcast") {
		t.Error("invalid type should be rejected")
	}

	e, ok := s.Get("m1")
	if !ok || !e.AddedAt.Equal(fixedNow()) || e.Type != models.DomainMovie {
		t.Errorf("Get() = %+v, %v", e, ok)
	}
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := NewStore(fixedNow)
	s.Add(movieItem("m1"), "")

	if !s.Remove("m1") {
		t.Error("Remove of present id should report true")
	}
	if s.Remove("m1") {
		t.Error("Remove of absent id should report false")
	}
	if s.Remove("never") {
		t.Error("Remove of unknown id should report false")
	}
	if s.Contains("m1") || s.Len() != 0 {
		t.Error("store should be empty")
	}
}

func TestStore_ListOrderAndFilter(t *testing.T) {
	s := NewStore(fixedNow)
	s.Add(movieItem("m2"), models.DomainMovie)
	s.Add(trackItem("s1"), models.DomainMusic)
	s.Add(movieItem("m4"), models.DomainMovie)
	s.Add(trackItem("s3"), models.DomainMusic)
	s.Remove("m4")
	s.Add(movieItem("m4"), models.DomainMovie)

	tests := []struct {
		filter models.FavoriteFilter
		want   string
	}{
		{models.FavoritesAll, "m2,s1,s3,m4"},
		{models.FavoritesMovie, "m2,m4"},
		{models.FavoritesMusic, "s1,s3"},
	}
	for _, tt := range tests {
		if got := ids(s.List(tt.filter)); got != tt.want {
			t.Errorf("List(%s) = %s, want %s", tt.filter, got, tt.want)
		}
	}
}

func TestStore_CopiesItems(t *testing.T) {
	s := NewStore(fixedNow)
	item := movieItem("m1")
	s.Add(item, models.DomainMovie)

	item.Movie.StreamingServices[0] = "Hulu"
	listed := s.List(models.FavoritesAll)
	if listed[0].Item.Movie.StreamingServices[0] != "Netflix" {
		t.Error("store aliases the caller's item")
	}

	listed[0].Item.Title = "changed"
	if e, _ := s.Get("m1"); e.Item.Title != "Movie m1" {
		t.Error("List returned an aliased entry")
	}
}

func TestStore_Restore(t *testing.T) {
	s := NewStore(fixedNow)
	s.Add(movieItem("old"), models.DomainMovie)

	s.Restore([]Entry{
		{Item: trackItem("s1"), Type: models.DomainMusic},
		{Item: movieItem("m2"), Type: models.DomainMovie},
		{Item: trackItem("s1"), Type: models.DomainMusic},
		{Item: models.Item{}, Type: models.DomainMovie},
		{Item: movieItem("bad"), Type: "podcast"},
	})

	if got := ids(s.List(models.FavoritesAll)); got != "s1,m2" {
		t.Errorf("after Restore = %s, want s1,m2", got)
	}
}

func TestStore_ConcurrentAdd(t *testing.T) {
	s := NewStore(nil)
	var wg sync.WaitGroup
	inserted := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inserted <- s.Add(movieItem("m1"), models.DomainMovie)
		}()
	}
	wg.Wait()
	close(inserted)

	count := 0
	for ok := range inserted {
		if ok {
			count++
		}
	}
	if count != 1 || s.Len() != 1 {
		t.Errorf("inserted %d times, Len %d; want exactly once", count, s.Len())
	}
}

func TestStore_Share(t *testing.T) {
	s := NewStore(fixedNow)
	s.Add(movieItem("m3"), models.DomainMovie)
	s.Add(trackItem("s2"), models.DomainMusic)

	var got []Shareable
	sharer := SharerFunc(func(_ context.Context, sh Shareable) error {
		got = append(got, sh)
		return nil
	})

	payload, err := s.Share(context.Background(), "m3", sharer)
	if err != nil {
		t.Fatalf("Share() error = %v", err)
	}
	if !strings.Contains(payload.Text, "directed by Billy Wilder") {
		t.Errorf("Text = %q", payload.Text)
	}
	if _, err := s.Share(context.Background(), "s2", sharer); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !strings.Contains(got[1].Text, "by Echo Chamber") {
		t.Errorf("shared %+v", got)
	}

	if _, err := s.Share(context.Background(), "missing", sharer); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}

	failing := SharerFunc(func(context.Context, Shareable) error { return errors.New("offline") })
	if _, err := s.Share(context.Background(), "m3", failing); err == nil {
		t.Error("expected sharer error to propagate")
	}
}

func TestLogSharer(t *testing.T) {
	var buf bytes.Buffer
	sharer := LogSharer{Logger: zerolog.New(&buf)}
	if err := sharer.Share(context.Background(), NewShareable(trackItem("s1"))); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"title":"Track s1"`) {
		t.Errorf("log output = %s", buf.String())
	}
}
