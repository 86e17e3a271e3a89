// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package wal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Compactor periodically reclaims BadgerDB value log space. Replayed WAL
// entries and overwritten credit balances leave stale values behind that
// only value log GC frees.
type Compactor struct {
	db           *badger.DB
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool

	lastRun   time.Time
	lastFiles int
}

// NewCompactor creates a compactor for db.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCompactor(db *badger.DB, cfg Config, logger zerolog.Logger) *Compactor {
	return &Compactor{
		db:           db,
		interval:     cfg.CompactInterval,
		discardRatio: cfg.GCDiscardRatio,
		logger:       logger.With().Str("component", "wal-compactor").Logger(),
	}
}

// Start begins the background compaction loop.
func (c *Compactor) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run(loopCtx)

	c.logger.Info().Dur("interval", c.interval).Msg("Compactor started")
	return nil
}

// Stop gracefully stops the compaction loop.
func (c *Compactor) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.cancel()
	c.running = false
	c.mu.Unlock()

	c.wg.Wait()
	c.logger.Info().Msg("Compactor stopped")
}

// IsRunning returns whether the compactor is active.
func (c *Compactor) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Compactor) run(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.RunNow(); err != nil {
				c.logger.Error().Err(err).Msg("Value log GC failed")
			}
		}
	}
}

// RunNow runs value log GC until no more files can be rewritten and returns
// the number of rewritten files.
func (c *Compactor) RunNow() (int, error) {
	start := time.Now()
	files := 0
	var runErr error
	for {
		err := c.db.RunValueLogGC(c.discardRatio)
		if err == nil {
			files++
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrGCInMemoryMode) {
			runErr = err
		}
		break
	}

	c.mu.Lock()
	c.lastRun = time.Now()
	c.lastFiles = files
	c.mu.Unlock()

	if files > 0 {
		c.logger.Info().Int("files", files).Dur("duration", time.Since(start)).Msg("Value log GC rewrote files")
	}
	return files, runErr
}

// CompactorStats reports the last run.
type CompactorStats struct {
	LastRun   time.Time
	LastFiles int
}

// Stats returns compaction statistics.
func (c *Compactor) Stats() CompactorStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CompactorStats{LastRun: c.lastRun, LastFiles: c.lastFiles}
}
