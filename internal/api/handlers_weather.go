// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/moodmate/internal/weather"
)

// WeatherRefreshRequest carries the device location. A null or missing
// coordinates field means the user denied location access.
type WeatherRefreshRequest struct {
	Coordinates *weather.Coordinates `json:"coordinates"`
}

// GetWeather handles GET /api/v1/weather. Data is null when no snapshot is
// held.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, s.Weather.Current())
}

// RefreshWeather handles POST /api/v1/weather/refresh.
func (h *Handler) RefreshWeather(w http.ResponseWriter, r *http.Request) {
	var req WeatherRefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := s.RefreshWeather(r.Context(), req.Coordinates)
	switch {
	case err == nil:
		respondSuccess(w, r, http.StatusOK, snap)
	case errors.Is(err, weather.ErrLocationPermissionDenied):
		respondSuccess(w, r, http.StatusOK, nil, WarningLocationDenied)
	default:
		respondDomainError(w, r, err)
	}
}
