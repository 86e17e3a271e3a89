// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package wal

import (
	"context"
	"sync"
	"time"
)

// Replayer is the part of Writer the retry loop drives.
type Replayer interface {
	Replay(ctx context.Context) (ReplayStats, error)
}

// RetryLoop replays queued writes in the background.
type RetryLoop struct {
	replayer Replayer
	interval time.Duration

	// State - all protected by mu
	mu       sync.Mutex
	cancel   context.CancelFunc
	running  bool
	stopping bool          // true while Stop() is waiting for goroutine
	stopDone chan struct{} // closed when the goroutine exits
}

// NewRetryLoop creates a retry loop ticking every interval.
func NewRetryLoop(replayer Replayer, interval time.Duration) *RetryLoop {
	return &RetryLoop{
		replayer: replayer,
		interval: interval,
	}
}

// Start begins the background loop. A replay pass runs immediately so that
// entries recovered at startup do not wait a full interval.
func (r *RetryLoop) Start(ctx context.Context) error {
	r.mu.Lock()

	// Wait for any in-progress Stop() to complete
	for r.stopping {
		stopDone := r.stopDone
		r.mu.Unlock()
		<-stopDone
		r.mu.Lock()
	}

	if r.running {
		r.mu.Unlock()
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true
	r.stopDone = make(chan struct{})
	done := r.stopDone
	r.mu.Unlock()

	go r.run(loopCtx, done)
	return nil
}

// Stop cancels the loop and waits for the current pass to finish.
func (r *RetryLoop) Stop() {
	r.mu.Lock()
	if !r.running || r.stopping {
		r.mu.Unlock()
		return
	}

	r.cancel()
	r.running = false
	r.stopping = true
	stopDone := r.stopDone
	r.mu.Unlock()

	<-stopDone

	r.mu.Lock()
	r.stopping = false
	r.mu.Unlock()
}

// IsRunning returns whether the loop is active.
func (r *RetryLoop) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *RetryLoop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	r.pass(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.pass(ctx)
		}
	}
}

func (r *RetryLoop) pass(ctx context.Context) {
	// Replay logs its own failures; a read error is retried next tick.
	_, _ = r.replayer.Replay(ctx)
}
