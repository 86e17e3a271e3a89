// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodmate/internal/credits"
	"github.com/tomtom215/moodmate/internal/favorites"
	"github.com/tomtom215/moodmate/internal/metrics"
	"github.com/tomtom215/moodmate/internal/storage"
	"github.com/tomtom215/moodmate/internal/swipe"
	"github.com/tomtom215/moodmate/internal/weather"
)

// Config controls session defaults and lifetime.
type Config struct {
	InitialCredits          int
	AdCooldown              time.Duration
	RefundOnGenerationError bool
	IdleTimeout             time.Duration
	RecentLimit             int
}

// Deps are the collaborators shared by all sessions.
type Deps struct {
	Engine      swipe.Generator
	Weather     weather.Provider
	Persistence storage.Persistence

	// Sharer defaults to favorites.LogSharer.
	Sharer favorites.Sharer

	// Now defaults to time.Now.
	Now func() time.Time

	Logger zerolog.Logger
}

// Manager owns the open sessions.
type Manager struct {
	cfg    Config
	deps   Deps
	logger zerolog.Logger

	// ads outlives sessions so that closing one does not reset the cooldown.
	ads *credits.AdLimiters

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager.
//
//nolint:gocritic // hugeParam: Deps carries a zerolog.Logger by value
func NewManager(cfg Config, deps Deps) (*Manager, error) {
	if deps.Engine == nil {
		return nil, errors.New("session: engine is required")
	}
	if deps.Persistence == nil {
		return nil, errors.New("session: persistence is required")
	}
	if deps.Weather == nil {
		deps.Weather = weather.StaticProvider{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = DefaultRecentLimit
	}
	return &Manager{
		cfg:      cfg,
		deps:     deps,
		logger:   deps.Logger.With().Str("component", "session-manager").Logger(),
		ads:      credits.NewAdLimiters(cfg.AdCooldown, deps.Now),
		sessions: make(map[string]*Session),
	}, nil
}

// Get returns the user's session, opening and restoring it if needed.
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, storage.ErrMissingUserID
	}

	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		s.Touch()
		return s, nil
	}
	m.mu.Unlock()

	s := newSession(userID, &m.cfg, &m.deps, m.ads)
	s.restore(ctx)

	m.mu.Lock()
	if existing, ok := m.sessions[userID]; ok {
		// Lost the race against a concurrent open.
		m.mu.Unlock()
		s.Close()
		existing.Touch()
		return existing, nil
	}
	m.sessions[userID] = s
	n := len(m.sessions)
	m.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	m.logger.Debug().Str("user_id", userID).Msg("Session opened")
	return s, nil
}

// Close closes and forgets the user's session.
func (m *Manager) Close(userID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.Close()
	metrics.ActiveSessions.Set(float64(n))
	return true
}

// Sweep closes sessions idle for longer than the idle timeout and returns
// how many were closed. Ad limiters whose cooldown has elapsed are dropped
// as well.
func (m *Manager) Sweep(now time.Time) int {
	m.ads.Prune(now)
	if m.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-m.cfg.IdleTimeout)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	if len(idle) > 0 {
		metrics.ActiveSessions.Set(float64(n))
		m.logger.Info().Int("closed", len(idle)).Int("open", n).Msg("Idle sessions swept")
	}
	return len(idle)
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
	metrics.ActiveSessions.Set(0)
}
