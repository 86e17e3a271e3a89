// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package filters holds the movie and music filter panels.
//
// Each panel has a draft, edited freely, and an active filter, which is what
// the recommendation engine reads. Apply validates the draft and promotes
// it; Reset restores the defaults on both.
package filters

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/moodmate/internal/models"
)

// ErrInvalidFilter wraps every draft validation failure.
var ErrInvalidFilter = errors.New("invalid filter")

type panel[T any] struct {
	mu       sync.Mutex
	draft    T
	active   T
	defaults func() T
	clone    func(T) T
	validate func(T) error

	// normalize runs on drafts replaced wholesale; the edit helpers keep
	// their lists duplicate-free on their own.
	normalize func(T) T
}

func newPanel[T any](defaults func() T, clone func(T) T, validate func(T) error, normalize func(T) T) *panel[T] {
	return &panel[T]{
		draft:     defaults(),
		active:    defaults(),
		defaults:  defaults,
		clone:     clone,
		validate:  validate,
		normalize: normalize,
	}
}

func (p *panel[T]) Draft() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clone(p.draft)
}

func (p *panel[T]) Active() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clone(p.active)
}

// SetDraft replaces the draft. Repeated list entries collapse to the first.
func (p *panel[T]) SetDraft(f T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = p.normalize(p.clone(f))
}

func (p *panel[T]) edit(fn func(*T)) T {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.draft)
	return p.clone(p.draft)
}

func (p *panel[T]) Apply() (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.validate(p.draft); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	p.active = p.clone(p.draft)
	return p.clone(p.active), nil
}

func (p *panel[T]) Discard() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = p.clone(p.active)
	return p.clone(p.draft)
}

func (p *panel[T]) Reset() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = p.defaults()
	p.active = p.defaults()
	return p.clone(p.active)
}

// MovieFilters is the movie filter panel.
type MovieFilters struct {
	*panel[models.MovieFilter]
}

// NewMovieFilters returns a panel at the default state.
func NewMovieFilters() *MovieFilters {
	return &MovieFilters{newPanel(models.DefaultMovieFilter, models.MovieFilter.Clone, validateMovie, normalizeMovie)}
}

// ToggleGenre adds genre to the draft or removes it when already selected.
func (m *MovieFilters) ToggleGenre(genre string) models.MovieFilter {
	return m.edit(func(f *models.MovieFilter) { f.Genres = toggle(f.Genres, genre) })
}

// ToggleService adds or removes a streaming service from the draft.
func (m *MovieFilters) ToggleService(service string) models.MovieFilter {
	return m.edit(func(f *models.MovieFilter) { f.StreamingServices = toggle(f.StreamingServices, service) })
}

// SetYearRange sets the draft release year range.
func (m *MovieFilters) SetYearRange(minYear, maxYear int) models.MovieFilter {
	return m.edit(func(f *models.MovieFilter) { f.YearRange = models.IntRange{Min: minYear, Max: maxYear} })
}

// SetRuntimeRange sets the draft runtime range in minutes.
func (m *MovieFilters) SetRuntimeRange(minMinutes, maxMinutes int) models.MovieFilter {
	return m.edit(func(f *models.MovieFilter) { f.RuntimeRange = models.IntRange{Min: minMinutes, Max: maxMinutes} })
}

// MusicFilters is the music filter panel.
type MusicFilters struct {
	*panel[models.MusicFilter]
}

// NewMusicFilters returns a panel at the default state.
func NewMusicFilters() *MusicFilters {
	return &MusicFilters{newPanel(models.DefaultMusicFilter, models.MusicFilter.Clone, validateMusic, normalizeMusic)}
}

// ToggleGenre adds genre to the draft or removes it when already selected.
func (m *MusicFilters) ToggleGenre(genre string) models.MusicFilter {
	return m.edit(func(f *models.MusicFilter) { f.Genres = toggle(f.Genres, genre) })
}

// SelectMood sets the draft mood. Selecting the current mood clears it.
func (m *MusicFilters) SelectMood(mood string) models.MusicFilter {
	return m.edit(func(f *models.MusicFilter) { f.Mood = selectOne(f.Mood, mood) })
}

// SelectActivity sets the draft activity. Selecting the current one clears it.
func (m *MusicFilters) SelectActivity(activity string) models.MusicFilter {
	return m.edit(func(f *models.MusicFilter) { f.Activity = selectOne(f.Activity, activity) })
}

// AddArtist appends a trimmed artist name. Blank and duplicate names are ignored.
func (m *MusicFilters) AddArtist(name string) models.MusicFilter {
	name = strings.TrimSpace(name)
	return m.edit(func(f *models.MusicFilter) {
		if name != "" && !contains(f.Artists, name) {
			f.Artists = append(f.Artists, name)
		}
	})
}

// RemoveArtist drops an artist from the draft.
func (m *MusicFilters) RemoveArtist(name string) models.MusicFilter {
	return m.edit(func(f *models.MusicFilter) { f.Artists = remove(f.Artists, name) })
}

//nolint:gocritic // hugeParam: filters are passed by value for immutability
func normalizeMovie(f models.MovieFilter) models.MovieFilter {
	f.Genres = dedupe(f.Genres)
	f.StreamingServices = dedupe(f.StreamingServices)
	return f
}

//nolint:gocritic // hugeParam: filters are passed by value for immutability
func normalizeMusic(f models.MusicFilter) models.MusicFilter {
	f.Genres = dedupe(f.Genres)
	artists := make([]string, 0, len(f.Artists))
	for _, a := range f.Artists {
		if a = strings.TrimSpace(a); a != "" {
			artists = append(artists, a)
		}
	}
	f.Artists = dedupe(artists)
	return f
}

// dedupe keeps the first occurrence of each value, in order. A nil list
// stays nil.
func dedupe(list []string) []string {
	if list == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func toggle(list []string, v string) []string {
	if contains(list, v) {
		return remove(list, v)
	}
	return append(list, v)
}

func remove(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func selectOne(current, v string) string {
	if current == v {
		return ""
	}
	return v
}

//nolint:gocritic // hugeParam: filters are passed by value for immutability
func validateMovie(f models.MovieFilter) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.YearRange.Min < OptionMinYear || f.YearRange.Max > OptionMaxYear {
		return fmt.Errorf("year_range must lie within %d-%d", OptionMinYear, OptionMaxYear)
	}
	if f.RuntimeRange.Max > OptionMaxRuntime {
		return fmt.Errorf("runtime_range max must be at most %d", OptionMaxRuntime)
	}
	for _, g := range f.Genres {
		if !contains(movieGenres, g) {
			return fmt.Errorf("unknown movie genre %q", g)
		}
	}
	for _, s := range f.StreamingServices {
		if !contains(streamingServices, s) {
			return fmt.Errorf("unknown streaming service %q", s)
		}
	}
	return nil
}

//nolint:gocritic // hugeParam: filters are passed by value for immutability
func validateMusic(f models.MusicFilter) error {
	if err := f.Validate(); err != nil {
		return err
	}
	for _, g := range f.Genres {
		if !contains(musicGenres, g) {
			return fmt.Errorf("unknown music genre %q", g)
		}
	}
	if f.Mood != "" && !contains(musicMoods, f.Mood) {
		return fmt.Errorf("unknown music mood %q", f.Mood)
	}
	if f.Activity != "" && !contains(musicActivities, f.Activity) {
		return fmt.Errorf("unknown music activity %q", f.Activity)
	}
	return nil
}
