// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package favorites holds a user's saved movies and tracks.
//
// The store is an insertion-ordered set keyed by item ID. Add and Remove are
// idempotent and report whether anything changed, so callers only persist
// real changes.
package favorites

import (
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/moodmate/internal/metrics"
	"github.com/tomtom215/moodmate/internal/models"
)

// ErrNotFound is returned when an ID is not in the store.
var ErrNotFound = errors.New("favorite not found")

// Entry is one saved item tagged with its type.
type Entry struct {
	Item    models.Item   `json:"item"`
	Type    models.Domain `json:"type"`
	AddedAt time.Time     `json:"added_at"`
}

// Clone returns a deep copy of the entry.
//
//nolint:gocritic // hugeParam: value receiver keeps Entry usable as a value object
func (e Entry) Clone() Entry {
	e.Item = e.Item.Clone()
	return e
}

// Store is an ordered, idempotent set of favorites. It is safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Entry
	now     func() time.Time
}

// NewStore creates an empty store. A nil clock uses time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		entries: make(map[string]Entry),
		now:     now,
	}
}

// Add inserts a copy of item tagged with typ and reports whether it was
// inserted. An ID already present leaves the store unchanged. An empty typ
// falls back to the item's domain.
//
//nolint:gocritic // hugeParam: item is copied into the store
func (s *Store) Add(item models.Item, typ models.Domain) bool {
	if item.ID == "" {
		return false
	}
	if typ == "" {
		typ = item.Domain
	}
	if !typ.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[item.ID]; exists {
		metrics.RecordFavoritesOperation("add", false)
		return false
	}
	s.entries[item.ID] = Entry{Item: item.Clone(), Type: typ, AddedAt: s.now()}
	s.order = append(s.order, item.ID)
	metrics.RecordFavoritesOperation("add", true)
	return true
}

// Remove deletes id and reports whether it was present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; !exists {
		metrics.RecordFavoritesOperation("remove", false)
		return false
	}
	delete(s.entries, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	metrics.RecordFavoritesOperation("remove", true)
	return true
}

// List returns copies of the entries matching filter, in insertion order.
func (s *Store) List(filter models.FavoriteFilter) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		if filter.Matches(e.Type) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Get returns a copy of the entry for id.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return Entry{}, false
	}
	return e.Clone(), true
}

// Contains reports whether id is saved.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[id]
	return ok
}

// Len returns the number of saved items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Restore replaces the contents with entries, keeping their order.
// Later duplicates and entries without an ID or valid type are skipped.
func (s *Store) Restore(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entry, len(entries))
	s.order = make([]string, 0, len(entries))
	for i := range entries {
		e := entries[i]
		if e.Item.ID == "" || !e.Type.Valid() {
			continue
		}
		if _, dup := s.entries[e.Item.ID]; dup {
			continue
		}
		s.entries[e.Item.ID] = e.Clone()
		s.order = append(s.order, e.Item.ID)
	}
}
