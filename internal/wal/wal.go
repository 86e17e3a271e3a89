// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package wal

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moodmate/internal/storage"
)

// Kind identifies the mutation an entry replays.
type Kind string

const (
	KindSaveFavorite   Kind = "save_favorite"
	KindDeleteFavorite Kind = "delete_favorite"
	KindCreditBalance  Kind = "credit_balance"
)

// Entry is one queued mutation.
type Entry struct {
	// ID is a UUID used in logs.
	ID string `json:"id"`

	// Seq orders entries; assigned by the queue on Append.
	Seq uint64 `json:"seq"`

	UserID string `json:"user_id"`
	Kind   Kind   `json:"kind"`

	Favorite   *storage.FavoriteRecord `json:"favorite,omitempty"`
	FavoriteID string                  `json:"favorite_id,omitempty"`
	Balance    int                     `json:"balance,omitempty"`

	CreatedAt     time.Time `json:"created_at"`
	Attempts      int       `json:"attempts"`
	LastAttemptAt time.Time `json:"last_attempt_at,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
}

// apply replays the entry against p.
func (e *Entry) apply(ctx context.Context, p storage.Persistence) error {
	switch e.Kind {
	case KindSaveFavorite:
		if e.Favorite == nil {
			return fmt.Errorf("entry %s: save_favorite without record", e.ID)
		}
		return p.SaveFavorite(ctx, e.UserID, *e.Favorite)
	case KindDeleteFavorite:
		return p.DeleteFavorite(ctx, e.UserID, e.FavoriteID)
	case KindCreditBalance:
		return p.PersistCreditBalance(ctx, e.UserID, e.Balance)
	default:
		return fmt.Errorf("entry %s: unknown kind %q", e.ID, e.Kind)
	}
}

// Queue stores pending entries.
type Queue interface {
	// Append assigns e.Seq and stores the entry.
	Append(ctx context.Context, e *Entry) error

	// Pending returns all entries ordered by Seq.
	Pending(ctx context.Context) ([]*Entry, error)

	// Update stores the attempt bookkeeping of an existing entry.
	Update(ctx context.Context, e *Entry) error

	// Remove deletes a replayed entry.
	Remove(ctx context.Context, e *Entry) error
}

// MemoryQueue is a process-local Queue.
type MemoryQueue struct {
	mu      sync.Mutex
	nextSeq uint64
	entries map[uint64]Entry
}

// NewMemoryQueue creates an empty queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{entries: make(map[uint64]Entry)}
}

// Append implements Queue.
func (q *MemoryQueue) Append(_ context.Context, e *Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextSeq++
	e.Seq = q.nextSeq
	q.entries[e.Seq] = *e
	return nil
}

// Pending implements Queue.
func (q *MemoryQueue) Pending(_ context.Context) ([]*Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Entry, 0, len(q.entries))
	for _, e := range q.entries {
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// Update implements Queue.
func (q *MemoryQueue) Update(_ context.Context, e *Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.entries[e.Seq]; !ok {
		return ErrEntryNotFound
	}
	q.entries[e.Seq] = *e
	return nil
}

// Remove implements Queue.
func (q *MemoryQueue) Remove(_ context.Context, e *Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, e.Seq)
	return nil
}

// Key prefixes for BadgerDB storage.
const (
	prefixPending = "wal:"
	sequenceKey   = "walseq"
)

// ErrEntryNotFound is returned when updating an entry that was removed.
var ErrEntryNotFound = errors.New("wal entry not found")

// BadgerQueue stores entries in BadgerDB under the "wal:" prefix, keyed by
// big-endian sequence so iteration order is FIFO.
type BadgerQueue struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerQueue creates a queue on db. The caller owns db; call Close
// before closing it.
func NewBadgerQueue(db *badger.DB) (*BadgerQueue, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), 100)
	if err != nil {
		return nil, fmt.Errorf("get wal sequence: %w", err)
	}
	return &BadgerQueue{db: db, seq: seq}, nil
}

func entryKey(seq uint64) []byte {
	key := make([]byte, len(prefixPending)+8)
	copy(key, prefixPending)
	binary.BigEndian.PutUint64(key[len(prefixPending):], seq)
	return key
}

// Append implements Queue.
func (q *BadgerQueue) Append(_ context.Context, e *Entry) error {
	seq, err := q.seq.Next()
	if err != nil {
		return fmt.Errorf("next wal sequence: %w", err)
	}
	// Sequence starts at 0; keep 0 free so a zero Seq always means unassigned.
	e.Seq = seq + 1

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return q.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(e.Seq), data)
	})
}

// Pending implements Queue.
func (q *BadgerQueue) Pending(_ context.Context) ([]*Entry, error) {
	var entries []*Entry
	err := q.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixPending)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("decode wal entry: %w", err)
			}
			entries = append(entries, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Update implements Queue.
func (q *BadgerQueue) Update(_ context.Context, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return q.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(entryKey(e.Seq)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		return txn.Set(entryKey(e.Seq), data)
	})
}

// Remove implements Queue.
func (q *BadgerQueue) Remove(_ context.Context, e *Entry) error {
	return q.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(entryKey(e.Seq)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// Close releases the leased sequence range.
func (q *BadgerQueue) Close() error {
	return q.seq.Release()
}

var (
	_ Queue = (*MemoryQueue)(nil)
	_ Queue = (*BadgerQueue)(nil)
)
