// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moodmate/internal/metrics"
)

// Key prefixes for BadgerDB storage. User IDs are query-escaped so a ':' in
// an ID cannot collide with another user's prefix.
const (
	favoriteKeyPrefix = "fav:"
	creditsKeyPrefix  = "credits:"
)

const backendBadger = "badger"

// BadgerOptions configures OpenBadger.
type BadgerOptions struct {
	Path       string
	InMemory   bool
	SyncWrites bool
}

// OpenBadger opens a BadgerDB for use by BadgerStore and the wal queue.
func OpenBadger(o BadgerOptions) (*badger.DB, error) {
	opts := badger.DefaultOptions(o.Path)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = o.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", o.Path, err)
	}
	return db, nil
}

// BadgerStore implements Persistence on BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore wraps an open database. The caller owns db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// DB returns the underlying database.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

func favoriteUserPrefix(userID string) []byte {
	return []byte(favoriteKeyPrefix + url.QueryEscape(userID) + ":")
}

func favoriteKey(userID, id string) []byte {
	return append(favoriteUserPrefix(userID), id...)
}

func creditsKey(userID string) []byte {
	return []byte(creditsKeyPrefix + url.QueryEscape(userID))
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}

// LoadFavorites implements Persistence.
func (s *BadgerStore) LoadFavorites(_ context.Context, userID string) (recs []FavoriteRecord, err error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordStorageOperation(backendBadger, "load_favorites", time.Since(start), err) }()

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := favoriteUserPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec FavoriteRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, unavailable("load favorites", err)
	}

	sortRecords(recs)
	return recs, nil
}

// SaveFavorite implements Persistence.
//
//nolint:gocritic // hugeParam: signature fixed by Persistence
func (s *BadgerStore) SaveFavorite(_ context.Context, userID string, rec FavoriteRecord) (err error) {
	if err := validateUser(userID); err != nil {
		return err
	}
	if rec.Item.ID == "" {
		return fmt.Errorf("favorite record has no item id")
	}
	start := time.Now()
	defer func() { metrics.RecordStorageOperation(backendBadger, "save_favorite", time.Since(start), err) }()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal favorite: %w", err)
	}

	if err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(favoriteKey(userID, rec.Item.ID), data)
	}); err != nil {
		return unavailable("save favorite", err)
	}
	return nil
}

// DeleteFavorite implements Persistence.
func (s *BadgerStore) DeleteFavorite(_ context.Context, userID, id string) (err error) {
	if err := validateUser(userID); err != nil {
		return err
	}
	start := time.Now()
	defer func() { metrics.RecordStorageOperation(backendBadger, "delete_favorite", time.Since(start), err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(favoriteKey(userID, id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return unavailable("delete favorite", err)
	}
	return nil
}

// LoadCreditBalance implements Persistence.
func (s *BadgerStore) LoadCreditBalance(_ context.Context, userID string) (balance int, found bool, err error) {
	if err := validateUser(userID); err != nil {
		return 0, false, err
	}
	start := time.Now()
	defer func() { metrics.RecordStorageOperation(backendBadger, "load_credits", time.Since(start), err) }()

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(creditsKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			n, err := strconv.Atoi(string(val))
			if err != nil {
				return fmt.Errorf("decode balance: %w", err)
			}
			balance, found = n, true
			return nil
		})
	})
	if err != nil {
		return 0, false, unavailable("load credits", err)
	}
	return balance, found, nil
}

// PersistCreditBalance implements Persistence.
func (s *BadgerStore) PersistCreditBalance(_ context.Context, userID string, balance int) (err error) {
	if err := validateUser(userID); err != nil {
		return err
	}
	start := time.Now()
	defer func() { metrics.RecordStorageOperation(backendBadger, "persist_credits", time.Since(start), err) }()

	if err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(creditsKey(userID), []byte(strconv.Itoa(balance)))
	}); err != nil {
		return unavailable("persist credits", err)
	}
	return nil
}

var _ Persistence = (*BadgerStore)(nil)
