// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package storage persists favorites and credit balances per user.
//
// Two backends implement Persistence:
//   - BadgerStore: embedded BadgerDB, values encoded as JSON
//   - MemoryStore: process-local maps, used for development and tests
//
// Every backend failure is reported wrapped in ErrStorageUnavailable so the
// write-behind layer (package wal) can queue the write and retry it later.
package storage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/tomtom215/moodmate/internal/models"
)

var (
	// ErrStorageUnavailable wraps every backend failure.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMissingUserID is returned when an operation has no user ID.
	ErrMissingUserID = errors.New("user id is required")
)

// FavoriteRecord is the persisted form of a favorites entry.
type FavoriteRecord struct {
	Item    models.Item   `json:"item"`
	Type    models.Domain `json:"type"`
	AddedAt time.Time     `json:"added_at"`
}

// Persistence is the durable store behind a session.
type Persistence interface {
	// LoadFavorites returns the user's favorites in insertion order.
	LoadFavorites(ctx context.Context, userID string) ([]FavoriteRecord, error)

	// SaveFavorite upserts one favorite.
	SaveFavorite(ctx context.Context, userID string, rec FavoriteRecord) error

	// DeleteFavorite removes one favorite. Deleting a missing ID is not an error.
	DeleteFavorite(ctx context.Context, userID, id string) error

	// LoadCreditBalance returns the stored balance; found is false for new users.
	LoadCreditBalance(ctx context.Context, userID string) (balance int, found bool, err error)

	// PersistCreditBalance stores the balance.
	PersistCreditBalance(ctx context.Context, userID string, balance int) error
}

// IsUnavailable reports whether err is a retryable backend failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// sortRecords orders records by AddedAt, then ID for stable output.
func sortRecords(recs []FavoriteRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].AddedAt.Equal(recs[j].AddedAt) {
			return recs[i].AddedAt.Before(recs[j].AddedAt)
		}
		return recs[i].Item.ID < recs[j].Item.ID
	})
}

func validateUser(userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	return nil
}
