// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package swipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/moodmate/internal/models"
)

var (
	// ErrBusy is returned while a generation is loading.
	ErrBusy = errors.New("recommendations are loading")

	// ErrDecisionInFlight is returned while another decision is updating favorites.
	ErrDecisionInFlight = errors.New("another decision is in progress")

	// ErrStaleDecision is returned when DecideAt targets a card that is no
	// longer current.
	ErrStaleDecision = errors.New("decision targets a card that is no longer current")

	// ErrStaleGeneration is returned when a generation result was invalidated
	// before it arrived.
	ErrStaleGeneration = errors.New("generation result discarded")

	// ErrNothingToUndo is returned by Undo with an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("swipe controller closed")

	// ErrInvalidDecision is returned for a decision other than accept or reject.
	ErrInvalidDecision = errors.New("decision must be accept or reject")
)

// State is the controller state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePresenting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePresenting:
		return "presenting"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "loading":
		*s = StateLoading
	case "presenting":
		*s = StatePresenting
	default:
		return fmt.Errorf("unknown swipe state %q", text)
	}
	return nil
}

// Decision is the user's verdict on a card.
type Decision int

const (
	DecisionNone Decision = iota
	DecisionAccept
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionReject:
		return "reject"
	default:
		return "none"
	}
}

// ParseDecision parses "accept" or "reject" (case-insensitive).
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept":
		return DecisionAccept, nil
	case "reject":
		return DecisionReject, nil
	default:
		return DecisionNone, fmt.Errorf("%w: %q", ErrInvalidDecision, s)
	}
}

// DefaultGestureThreshold is the drag distance, in points, that commits a swipe.
const DefaultGestureThreshold = 120.0

// ResolveGesture maps a horizontal drag distance to a decision. Drags within
// the threshold resolve to DecisionNone. A non-positive threshold selects
// DefaultGestureThreshold.
func ResolveGesture(dx, threshold float64) Decision {
	if threshold <= 0 {
		threshold = DefaultGestureThreshold
	}
	switch {
	case dx > threshold:
		return DecisionAccept
	case dx < -threshold:
		return DecisionReject
	default:
		return DecisionNone
	}
}

// Outcome describes what a Decide or Undo call did.
type Outcome string

const (
	OutcomeNoOp     Outcome = "noop"
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeUndone   Outcome = "undone"
)

// Snapshot is a copy of the controller state.
type Snapshot struct {
	Domain    models.Domain `json:"domain"`
	State     State         `json:"state"`
	Cursor    int           `json:"cursor"`
	Items     []models.Item `json:"items"`
	Current   *models.Item  `json:"current,omitempty"`
	Remaining int           `json:"remaining"`
	CanUndo   bool          `json:"can_undo"`
}

// Result is returned by Decide, DecideAt and Undo.
type Result struct {
	Outcome  Outcome      `json:"outcome"`
	Item     *models.Item `json:"item,omitempty"`
	Position int          `json:"position"`

	// FavoriteChanged is true when an accept inserted a new favorite or an
	// undo removed one.
	FavoriteChanged bool `json:"favorite_changed"`

	Snapshot Snapshot `json:"snapshot"`
}
