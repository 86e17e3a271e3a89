// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"net/http"

	"github.com/tomtom215/moodmate/internal/credits"
	"github.com/tomtom215/moodmate/internal/session"
)

// CreditsResponse reports a balance and, for grants, how much was added.
type CreditsResponse struct {
	Balance int `json:"balance"`
	Granted int `json:"granted,omitempty"`
}

// PurchaseRequest selects a credit pack.
type PurchaseRequest struct {
	PackID string `json:"pack_id" validate:"required,max=64"`
}

// SubscribeRequest selects a subscription plan.
type SubscribeRequest struct {
	PlanID string `json:"plan_id" validate:"required,max=64"`
}

// GetCredits handles GET /api/v1/credits.
func (h *Handler) GetCredits(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, CreditsResponse{Balance: s.Credits.Balance()})
}

// GetOffers handles GET /api/v1/credits/offers.
func (h *Handler) GetOffers(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, credits.Catalog())
}

// PurchasePack handles POST /api/v1/credits/purchase.
func (h *Handler) PurchasePack(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	grant(w, r, s, func() (int, error) { return s.Grants.PurchasePack(req.PackID) })
}

// WatchAd handles POST /api/v1/credits/ad.
func (h *Handler) WatchAd(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	grant(w, r, s, s.Grants.WatchAd)
}

// Subscribe handles POST /api/v1/credits/subscribe.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	grant(w, r, s, func() (int, error) { return s.Grants.Subscribe(req.PlanID) })
}

func grant(w http.ResponseWriter, r *http.Request, s *session.Session, fn func() (int, error)) {
	granted, err := fn()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	status, warnings := creditsOutcome(s, http.StatusOK)
	respondSuccess(w, r, status, CreditsResponse{Balance: s.Credits.Balance(), Granted: granted}, warnings...)
}
