// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moodmate/internal/auth"
	"github.com/tomtom215/moodmate/internal/session"
)

// Sessions resolves the per-user session for a request.
type Sessions interface {
	Get(ctx context.Context, userID string) (*session.Session, error)
	Len() int
}

// PendingCounter reports write-behind entries awaiting replay.
type PendingCounter interface {
	Pending() int
}

// Handler serves the authenticated MoodMate endpoints.
type Handler struct {
	sessions  Sessions
	pending   PendingCounter
	version   string
	startTime time.Time
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithPendingCounter reports WAL backlog on the readiness endpoint.
func WithPendingCounter(p PendingCounter) HandlerOption {
	return func(h *Handler) { h.pending = p }
}

// WithVersion sets the version reported by health endpoints.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates a handler.
func NewHandler(sessions Sessions, opts ...HandlerOption) *Handler {
	h := &Handler{
		sessions:  sessions,
		version:   "dev",
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// session returns the caller's session or writes the error response.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respondDomainError(w, r, err)
		return nil, false
	}
	return s, true
}

// creditsOutcome turns the session's last balance write result into a
// status and warnings for a credit-changing response.
func creditsOutcome(s *session.Session, status int) (int, []string) {
	err := s.CreditsPersistError()
	switch {
	case err == nil:
		return status, nil
	case deferredWrite(err):
		return http.StatusAccepted, []string{WarningQueued}
	default:
		return status, []string{WarningCreditsNotPersisted}
	}
}
