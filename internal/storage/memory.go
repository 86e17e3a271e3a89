// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/moodmate/internal/metrics"
)

const backendMemory = "memory"

var errSimulatedOutage = errors.New("simulated outage")

// MemoryStore implements Persistence in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	favorites   map[string]map[string]FavoriteRecord
	credits     map[string]int
	unavailable bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		favorites: make(map[string]map[string]FavoriteRecord),
		credits:   make(map[string]int),
	}
}

// SetUnavailable makes every operation fail with ErrStorageUnavailable
// until called again with false.
func (s *MemoryStore) SetUnavailable(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = down
}

func (s *MemoryStore) check(op, userID string) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	if s.unavailable {
		err := fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, errSimulatedOutage)
		metrics.RecordStorageOperation(backendMemory, op, 0, err)
		return err
	}
	return nil
}

// LoadFavorites implements Persistence.
func (s *MemoryStore) LoadFavorites(_ context.Context, userID string) ([]FavoriteRecord, error) {
	start := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("load_favorites", userID); err != nil {
		return nil, err
	}

	recs := make([]FavoriteRecord, 0, len(s.favorites[userID]))
	for _, rec := range s.favorites[userID] {
		rec.Item = rec.Item.Clone()
		recs = append(recs, rec)
	}
	sortRecords(recs)
	metrics.RecordStorageOperation(backendMemory, "load_favorites", time.Since(start), nil)
	return recs, nil
}

// SaveFavorite implements Persistence.
//
//nolint:gocritic // hugeParam: signature fixed by Persistence
func (s *MemoryStore) SaveFavorite(_ context.Context, userID string, rec FavoriteRecord) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("save_favorite", userID); err != nil {
		return err
	}
	if rec.Item.ID == "" {
		return fmt.Errorf("favorite record has no item id")
	}

	user, ok := s.favorites[userID]
	if !ok {
		user = make(map[string]FavoriteRecord)
		s.favorites[userID] = user
	}
	rec.Item = rec.Item.Clone()
	user[rec.Item.ID] = rec
	metrics.RecordStorageOperation(backendMemory, "save_favorite", time.Since(start), nil)
	return nil
}

// DeleteFavorite implements Persistence.
func (s *MemoryStore) DeleteFavorite(_ context.Context, userID, id string) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("delete_favorite", userID); err != nil {
		return err
	}
	delete(s.favorites[userID], id)
	metrics.RecordStorageOperation(backendMemory, "delete_favorite", time.Since(start), nil)
	return nil
}

// LoadCreditBalance implements Persistence.
func (s *MemoryStore) LoadCreditBalance(_ context.Context, userID string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check("load_credits", userID); err != nil {
		return 0, false, err
	}
	balance, found := s.credits[userID]
	return balance, found, nil
}

// PersistCreditBalance implements Persistence.
func (s *MemoryStore) PersistCreditBalance(_ context.Context, userID string, balance int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("persist_credits", userID); err != nil {
		return err
	}
	s.credits[userID] = balance
	return nil
}

var _ Persistence = (*MemoryStore)(nil)
