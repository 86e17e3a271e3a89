// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moodmate/internal/models"
)

// AddFavoriteRequest saves an item. Type defaults to the item's domain.
type AddFavoriteRequest struct {
	Item models.Item `json:"item"`
	Type string      `json:"type,omitempty" validate:"omitempty,domain"`
}

// FavoriteChangeResponse reports whether an add or remove changed the set.
type FavoriteChangeResponse struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
	Count   int    `json:"count"`
}

// ListFavorites handles GET /api/v1/favorites?type=all|movie|music.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	filter, err := models.ParseFavoriteFilter(r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, s.Favorites.List(filter))
}

// AddFavorite handles POST /api/v1/favorites. A new favorite is 201, an
// existing one is 200 with changed=false.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req AddFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Item.Validate(); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	typ := req.Item.Domain
	if req.Type != "" {
		typ = models.Domain(req.Type)
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	changed, err := s.AddFavorite(r.Context(), req.Item, typ)
	status := http.StatusOK
	if changed {
		status = http.StatusCreated
	}
	respondMutation(w, r, status, FavoriteChangeResponse{
		ID:      req.Item.ID,
		Changed: changed,
		Count:   s.Favorites.Len(),
	}, err)
}

// RemoveFavorite handles DELETE /api/v1/favorites/{id}. Removing an ID that
// is not saved is not an error.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	changed, err := s.RemoveFavorite(r.Context(), id)
	respondMutation(w, r, http.StatusOK, FavoriteChangeResponse{
		ID:      id,
		Changed: changed,
		Count:   s.Favorites.Len(),
	}, err)
}

// ShareFavorite handles POST /api/v1/favorites/{id}/share.
func (h *Handler) ShareFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	payload, err := s.ShareFavorite(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, payload)
}

