// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package services

import (
	"context"
	"fmt"
)

// StartStopper matches the lifecycle of *wal.RetryLoop and *wal.Compactor.
type StartStopper interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
}

// WALRetryLoopService supervises the loop that replays queued durable
// writes into storage.
//
//	retry := wal.NewRetryLoop(writer, cfg.WAL.RetryInterval)
//	tree.AddDataService(services.NewWALRetryLoopService(retry))
type WALRetryLoopService struct {
	retryLoop StartStopper
	name      string
}

// NewWALRetryLoopService wraps retryLoop.
func NewWALRetryLoopService(retryLoop StartStopper) *WALRetryLoopService {
	return &WALRetryLoopService{
		retryLoop: retryLoop,
		name:      "wal-retry-loop",
	}
}

// Serve implements suture.Service. A Start failure is returned so the
// supervisor retries with backoff. Stop blocks until the loop exits.
func (s *WALRetryLoopService) Serve(ctx context.Context) error {
	if err := s.retryLoop.Start(ctx); err != nil {
		return fmt.Errorf("WAL retry loop start failed: %w", err)
	}

	<-ctx.Done()
	s.retryLoop.Stop()

	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (s *WALRetryLoopService) String() string {
	return s.name
}

// WALCompactorService supervises BadgerDB value log garbage collection.
// It is only registered when storage.backend is badger.
type WALCompactorService struct {
	compactor StartStopper
	name      string
}

// NewWALCompactorService wraps compactor.
func NewWALCompactorService(compactor StartStopper) *WALCompactorService {
	return &WALCompactorService{
		compactor: compactor,
		name:      "wal-compactor",
	}
}

// Serve implements suture.Service.
func (s *WALCompactorService) Serve(ctx context.Context) error {
	if err := s.compactor.Start(ctx); err != nil {
		return fmt.Errorf("WAL compactor start failed: %w", err)
	}

	<-ctx.Done()
	s.compactor.Stop()

	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (s *WALCompactorService) String() string {
	return s.name
}
