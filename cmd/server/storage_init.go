// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/moodmate/internal/config"
	"github.com/tomtom215/moodmate/internal/logging"
	"github.com/tomtom215/moodmate/internal/storage"
	"github.com/tomtom215/moodmate/internal/wal"
)

// persistenceComponents is the durable write path: a storage backend behind
// the write-behind WAL, plus the loops that drain and compact it.
type persistenceComponents struct {
	writer    *wal.Writer
	retry     *wal.RetryLoop
	compactor *wal.Compactor // nil unless storage.backend is badger

	closeOnce sync.Once
	closers   []func() error
}

// Close releases the queue and database. Safe to call more than once.
func (p *persistenceComponents) Close() {
	p.closeOnce.Do(func() {
		for _, c := range p.closers {
			if err := c(); err != nil {
				logging.Error().Err(err).Msg("Error closing storage")
			}
		}
	})
}

func walConfig(cfg *config.Config) wal.Config {
	c := wal.DefaultConfig()
	c.RetryInterval = cfg.WAL.RetryInterval
	c.MaxRetries = cfg.WAL.MaxRetries
	c.InitialBackoff = cfg.WAL.InitialBackoff
	c.MaxBackoff = cfg.WAL.MaxBackoff
	c.CompactInterval = cfg.WAL.CompactInterval
	return c
}

// initPersistence opens the configured backend and wraps it in a WAL writer.
// Entries left queued by a previous run are counted by NewWriter and drained
// by the retry loop once the supervisor starts it.
func initPersistence(ctx context.Context, cfg *config.Config) (*persistenceComponents, error) {
	walCfg := walConfig(cfg)
	p := &persistenceComponents{}

	var (
		store storage.Persistence
		queue wal.Queue
		db    *badger.DB
	)

	switch cfg.Storage.Backend {
	case "badger":
		var err error
		db, err = storage.OpenBadger(storage.BadgerOptions{Path: cfg.Storage.Path, SyncWrites: true})
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, db.Close)

		bq, err := wal.NewBadgerQueue(db)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("create wal queue: %w", err)
		}
		// The queue lease must be released before the database closes.
		p.closers = append([]func() error{bq.Close}, p.closers...)

		store = storage.NewBadgerStore(db)
		queue = bq
		logging.Info().Str("path", cfg.Storage.Path).Msg("BadgerDB storage opened")
	default:
		store = storage.NewMemoryStore()
		queue = wal.NewMemoryQueue()
		logging.Warn().Msg("In-memory storage: favorites and credits are lost on restart")
	}

	writer, err := wal.NewWriter(ctx, store, queue, walCfg, logging.Logger())
	if err != nil {
		p.Close()
		return nil, err
	}
	p.writer = writer
	p.retry = wal.NewRetryLoop(writer, walCfg.RetryInterval)

	if db != nil && walCfg.CompactInterval > 0 {
		p.compactor = wal.NewCompactor(db, walCfg, logging.Logger())
	}

	if n := writer.Pending(); n > 0 {
		logging.Info().Int("pending", n).Msg("Recovered queued writes from previous run")
	}
	return p, nil
}
