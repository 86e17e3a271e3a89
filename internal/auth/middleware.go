// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodmate/internal/logging"
	"github.com/tomtom215/moodmate/internal/models"
)

// Mode is the authentication strategy.
type Mode string

const (
	// ModeJWT uses HS256 bearer tokens.
	ModeJWT Mode = "jwt"

	// ModeNone trusts the X-User-ID header.
	ModeNone Mode = "none"
)

// UserIDHeader carries the user ID in ModeNone.
const UserIDHeader = "X-User-ID"

// ParseMode converts a string to Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jwt", "":
		return ModeJWT, nil
	case "none":
		return ModeNone, nil
	default:
		return "", errors.New("invalid auth mode: " + s)
	}
}

// Middleware authenticates requests and stores the user ID in the context.
type Middleware struct {
	mode     Mode
	verifier *Verifier
}

// NewMiddleware creates the middleware. verifier may be nil in ModeNone.
func NewMiddleware(mode Mode, verifier *Verifier) *Middleware {
	return &Middleware{mode: mode, verifier: verifier}
}

// Authenticate rejects unauthenticated requests with 401.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.resolve(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("Authentication failed")
			writeUnauthorized(w, err)
			return
		}
		ctx := logging.ContextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) resolve(r *http.Request) (string, error) {
	if m.mode == ModeNone {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			return "", fmt.Errorf("%w: %s header is required", ErrNoCredentials, UserIDHeader)
		}
		return userID, nil
	}

	if m.verifier == nil {
		return "", errors.New("jwt verifier not configured")
	}
	token, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return "", err
	}
	return m.verifier.Verify(token)
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoCredentials
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: expected Bearer token", ErrInvalidToken)
	}
	return strings.TrimSpace(parts[1]), nil
}

// UserID returns the authenticated user ID, or "" outside Authenticate.
func UserID(ctx context.Context) string {
	return logging.UserIDFromContext(ctx)
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	message := "authentication required"
	switch {
	case errors.Is(err, ErrMissingSubject):
		message = "token has no subject"
	case errors.Is(err, ErrInvalidToken):
		message = "invalid or expired token"
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="moodmate"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    "AUTHENTICATION_ERROR",
			Message: message,
		},
	})
}
