// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package wal

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/metrics"
	"github.com/tomtom215/moodmate/internal/storage"
)

// ErrQueued is returned when a write was not applied to storage yet but is
// safely queued for replay. Callers treat it as success of the in-memory
// operation.
var ErrQueued = errors.New("write queued for retry")

// IsQueued reports whether err means the write is pending replay.
func IsQueued(err error) bool {
	return errors.Is(err, ErrQueued)
}

const userLockStripes = 64

// Writer applies mutations to storage and queues them when storage is
// unavailable. It implements storage.Persistence so a session can use it in
// place of the store.
//
// Writes for one user are serialized; writes for different users proceed in
// parallel.
type Writer struct {
	store  storage.Persistence
	queue  Queue
	config Config
	logger zerolog.Logger
	now    func() time.Time

	userLocks [userLockStripes]sync.Mutex

	mu      sync.Mutex
	pending map[string]int
}

// NewWriter creates a writer and loads pending counts from queue, so entries
// left by a previous process keep their ordering guarantees.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWriter(ctx context.Context, store storage.Persistence, queue Queue, cfg Config, logger zerolog.Logger) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wal config: %w", err)
	}
	w := &Writer{
		store:   store,
		queue:   queue,
		config:  cfg,
		logger:  logger.With().Str("component", "wal").Logger(),
		now:     time.Now,
		pending: make(map[string]int),
	}

	entries, err := queue.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pending wal entries: %w", err)
	}
	for _, e := range entries {
		w.pending[e.UserID]++
	}
	metrics.SetWALPending(len(entries))
	if len(entries) > 0 {
		w.logger.Info().Int("pending_entries", len(entries)).Msg("Recovered pending WAL entries")
	}
	return w, nil
}

func (w *Writer) lockUser(userID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	m := &w.userLocks[h.Sum32()%userLockStripes]
	m.Lock()
	return m.Unlock
}

// Pending returns the number of queued entries across all users.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, c := range w.pending {
		n += c
	}
	return n
}

// PendingFor returns the number of queued entries for one user.
func (w *Writer) PendingFor(userID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending[userID]
}

// LoadFavorites implements storage.Persistence. Pending entries for the user
// are applied on top of the stored records.
func (w *Writer) LoadFavorites(ctx context.Context, userID string) ([]storage.FavoriteRecord, error) {
	recs, err := w.store.LoadFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w.PendingFor(userID) == 0 {
		return recs, nil
	}
	entries, err := w.userEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		switch e.Kind {
		case KindSaveFavorite:
			if e.Favorite == nil {
				continue
			}
			recs = upsertRecord(recs, *e.Favorite)
		case KindDeleteFavorite:
			recs = removeRecord(recs, e.FavoriteID)
		}
	}
	return recs, nil
}

// LoadCreditBalance implements storage.Persistence. The newest pending
// balance wins over the stored one.
func (w *Writer) LoadCreditBalance(ctx context.Context, userID string) (int, bool, error) {
	balance, found, err := w.store.LoadCreditBalance(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if w.PendingFor(userID) == 0 {
		return balance, found, nil
	}
	entries, err := w.userEntries(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	for _, e := range entries {
		if e.Kind == KindCreditBalance {
			balance, found = e.Balance, true
		}
	}
	return balance, found, nil
}

// SaveFavorite implements storage.Persistence.
func (w *Writer) SaveFavorite(ctx context.Context, userID string, rec storage.FavoriteRecord) error {
	r := rec
	return w.write(ctx, &Entry{UserID: userID, Kind: KindSaveFavorite, Favorite: &r})
}

// DeleteFavorite implements storage.Persistence.
func (w *Writer) DeleteFavorite(ctx context.Context, userID, id string) error {
	return w.write(ctx, &Entry{UserID: userID, Kind: KindDeleteFavorite, FavoriteID: id})
}

// PersistCreditBalance implements storage.Persistence.
func (w *Writer) PersistCreditBalance(ctx context.Context, userID string, balance int) error {
	return w.write(ctx, &Entry{UserID: userID, Kind: KindCreditBalance, Balance: balance})
}

func (w *Writer) write(ctx context.Context, e *Entry) error {
	if e.UserID == "" {
		return storage.ErrMissingUserID
	}
	unlock := w.lockUser(e.UserID)
	defer unlock()

	if w.PendingFor(e.UserID) > 0 {
		if err := w.enqueue(ctx, e, ""); err != nil {
			return err
		}
		return ErrQueued
	}

	err := e.apply(ctx, w.store)
	if err == nil {
		return nil
	}
	if !storage.IsUnavailable(err) {
		return err
	}
	if qerr := w.enqueue(ctx, e, err.Error()); qerr != nil {
		return errors.Join(err, qerr)
	}
	return fmt.Errorf("%w: %w", ErrQueued, err)
}

func (w *Writer) enqueue(ctx context.Context, e *Entry, cause string) error {
	e.ID = uuid.New().String()
	e.CreatedAt = w.now()
	if cause != "" {
		e.Attempts = 1
		e.LastAttemptAt = e.CreatedAt
		e.LastError = cause
	}
	if err := w.queue.Append(ctx, e); err != nil {
		w.logger.Error().Err(err).
			Str("user_id", e.UserID).
			Str("kind", string(e.Kind)).
			Msg("Failed to queue write, mutation is lost")
		return fmt.Errorf("append wal entry: %w", err)
	}

	w.mu.Lock()
	w.pending[e.UserID]++
	total := 0
	for _, c := range w.pending {
		total += c
	}
	w.mu.Unlock()

	metrics.RecordWALEnqueue(string(e.Kind))
	metrics.SetWALPending(total)
	w.logger.Warn().
		Str("entry_id", e.ID).
		Str("user_id", e.UserID).
		Str("kind", string(e.Kind)).
		Msg("Storage unavailable, write queued")
	return nil
}

func (w *Writer) userEntries(ctx context.Context, userID string) ([]*Entry, error) {
	all, err := w.queue.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("read wal entries: %w", err)
	}
	out := all[:0]
	for _, e := range all {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ReplayStats summarizes one replay pass.
type ReplayStats struct {
	Succeeded int
	Failed    int
	Deferred  int
	Remaining int
}

// Replay applies pending entries in FIFO order per user. A user whose head
// entry fails or is still backing off is skipped for the rest of the pass so
// later entries never overtake it. Entries are never dropped.
func (w *Writer) Replay(ctx context.Context) (ReplayStats, error) {
	var stats ReplayStats

	entries, err := w.queue.Pending(ctx)
	if err != nil {
		return stats, fmt.Errorf("read wal entries: %w", err)
	}
	if len(entries) == 0 {
		return stats, nil
	}

	blocked := make(map[string]bool)
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		if blocked[e.UserID] {
			stats.Deferred++
			continue
		}
		if !w.ready(e) {
			blocked[e.UserID] = true
			stats.Deferred++
			continue
		}
		if w.replayEntry(ctx, e) {
			stats.Succeeded++
		} else {
			blocked[e.UserID] = true
			stats.Failed++
		}
	}

	stats.Remaining = w.Pending()
	metrics.SetWALPending(stats.Remaining)
	if stats.Succeeded > 0 || stats.Failed > 0 {
		w.logger.Info().
			Int("succeeded", stats.Succeeded).
			Int("failed", stats.Failed).
			Int("deferred", stats.Deferred).
			Int("remaining", stats.Remaining).
			Msg("WAL replay complete")
	}
	return stats, ctx.Err()
}

func (w *Writer) ready(e *Entry) bool {
	if e.LastAttemptAt.IsZero() {
		return true
	}
	return w.now().Sub(e.LastAttemptAt) >= w.config.Backoff(e.Attempts)
}

func (w *Writer) replayEntry(ctx context.Context, e *Entry) bool {
	unlock := w.lockUser(e.UserID)
	defer unlock()

	err := e.apply(ctx, w.store)
	if err != nil {
		e.Attempts++
		e.LastAttemptAt = w.now()
		e.LastError = err.Error()
		if uerr := w.queue.Update(ctx, e); uerr != nil {
			w.logger.Error().Err(uerr).Str("entry_id", e.ID).Msg("Failed to update WAL entry")
		}
		metrics.RecordWALRetry(false)

		event := w.logger.Warn()
		if e.Attempts > w.config.MaxRetries {
			event = w.logger.Error()
		}
		event.Err(err).
			Str("entry_id", e.ID).
			Str("user_id", e.UserID).
			Str("kind", string(e.Kind)).
			Int("attempts", e.Attempts).
			Msg("WAL replay failed")
		return false
	}

	if err := w.queue.Remove(ctx, e); err != nil {
		// The write is applied; replaying it again is idempotent.
		w.logger.Error().Err(err).Str("entry_id", e.ID).Msg("Failed to remove replayed WAL entry")
		return false
	}
	w.mu.Lock()
	if w.pending[e.UserID]--; w.pending[e.UserID] <= 0 {
		delete(w.pending, e.UserID)
	}
	w.mu.Unlock()
	metrics.RecordWALRetry(true)
	return true
}

func upsertRecord(recs []storage.FavoriteRecord, rec storage.FavoriteRecord) []storage.FavoriteRecord {
	for i := range recs {
		if recs[i].Item.ID == rec.Item.ID {
			recs[i] = rec
			return recs
		}
	}
	return append(recs, rec)
}

func removeRecord(recs []storage.FavoriteRecord, id string) []storage.FavoriteRecord {
	out := recs[:0]
	for _, r := range recs {
		if r.Item.ID != id {
			out = append(out, r)
		}
	}
	return out
}

var _ storage.Persistence = (*Writer)(nil)
