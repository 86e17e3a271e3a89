// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper closes idle sessions. Satisfied by *session.Manager.
type Sweeper interface {
	Sweep(now time.Time) int
}

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = 5 * time.Minute

// SessionSweeperService periodically evicts idle sessions so their swipe
// controllers are closed and pending generations canceled.
type SessionSweeperService struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger
	name     string
}

// NewSessionSweeperService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSessionSweeperService(sweeper Sweeper, interval time.Duration, logger zerolog.Logger) *SessionSweeperService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SessionSweeperService{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
		logger:   logger.With().Str("service", "session-sweeper").Logger(),
		name:     "session-sweeper",
	}
}

// Serve implements suture.Service.
func (s *SessionSweeperService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("Session sweeper starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("Session sweeper stopping")
			return ctx.Err()
		case <-ticker.C:
			if n := s.sweeper.Sweep(s.now()); n > 0 {
				s.logger.Debug().Int("closed", n).Msg("Sweep pass complete")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *SessionSweeperService) String() string {
	return s.name
}
