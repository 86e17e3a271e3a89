// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"net/http"

	"github.com/tomtom215/moodmate/internal/logging"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/swipe"
)

// GenerateResponse is returned by a successful generation.
type GenerateResponse struct {
	Items    []models.Item  `json:"items"`
	Snapshot swipe.Snapshot `json:"snapshot"`
	Balance  int            `json:"balance"`
}

// DecideRequest accepts either an explicit decision or a raw horizontal
// drag distance. Position, when set, must still be the current card.
type DecideRequest struct {
	Decision string   `json:"decision,omitempty" validate:"omitempty,decision"`
	Position *int     `json:"position,omitempty" validate:"omitempty,min=0"`
	DX       *float64 `json:"dx,omitempty"`
}

// GenerateRecommendations handles POST /api/v1/recommendations/{domain}/generate.
// It spends one credit.
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	items, err := s.Generate(r.Context(), d)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	ctrl, err := s.Controller(d)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	status, warnings := creditsOutcome(s, http.StatusOK)
	respondSuccess(w, r, status, GenerateResponse{
		Items:    items,
		Snapshot: ctrl.Snapshot(),
		Balance:  s.Credits.Balance(),
	}, warnings...)
}

// GetRecommendations handles GET /api/v1/recommendations/{domain}.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, ctrl.Snapshot())
}

// Decide handles POST /api/v1/recommendations/{domain}/decide.
//
// A dx within the gesture threshold is a snap-back: nothing is decided and
// the current snapshot is returned with outcome "noop".
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var decision swipe.Decision
	switch {
	case req.Decision != "":
		parsed, err := swipe.ParseDecision(req.Decision)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		decision = parsed
	case req.DX != nil:
		decision = swipe.ResolveGesture(*req.DX, swipe.DefaultGestureThreshold)
	default:
		respondError(w, r, http.StatusBadRequest, CodeValidation, "decision or dx is required", nil)
		return
	}

	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	if decision == swipe.DecisionNone {
		snap := ctrl.Snapshot()
		respondSuccess(w, r, http.StatusOK, swipe.Result{Outcome: swipe.OutcomeNoOp, Position: snap.Cursor, Snapshot: snap})
		return
	}

	var (
		res swipe.Result
		err error
	)
	if req.Position != nil {
		res, err = ctrl.DecideAt(r.Context(), *req.Position, decision)
	} else {
		res, err = ctrl.Decide(r.Context(), decision)
	}
	respondSwipe(w, r, res, err)
}

// Undo handles POST /api/v1/recommendations/{domain}/undo.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	res, err := ctrl.Undo(r.Context())
	respondSwipe(w, r, res, err)
}

// GetRecent handles GET /api/v1/recommendations/recent.
func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, s.Recent())
}

func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*swipe.Controller, bool) {
	d, ok := domainParam(w, r)
	if !ok {
		return nil, false
	}
	s, ok := h.session(w, r)
	if !ok {
		return nil, false
	}
	ctrl, err := s.Controller(d)
	if err != nil {
		respondDomainError(w, r, err)
		return nil, false
	}
	return ctrl, true
}

// respondSwipe handles the (Result, error) pair from Decide and Undo, where
// an error alongside a populated Result is a favorites persistence failure
// after the decision was applied.
func respondSwipe(w http.ResponseWriter, r *http.Request, res swipe.Result, err error) {
	switch {
	case err == nil:
		respondSuccess(w, r, http.StatusOK, res)
	case res.Outcome == "":
		respondDomainError(w, r, err)
	case deferredWrite(err):
		respondSuccess(w, r, http.StatusAccepted, res, WarningQueued)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Favorite change not persisted")
		respondSuccess(w, r, http.StatusOK, res, WarningFavoriteNotSaved)
	}
}
