// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"net/http"

	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/mood"
)

// MoodResponse is the current sample with its display classification.
type MoodResponse struct {
	Sample         models.MoodSample   `json:"sample"`
	Classification mood.Classification `json:"classification"`
}

func newMoodResponse(m models.MoodSample) MoodResponse {
	return MoodResponse{Sample: m, Classification: mood.Classify(m)}
}

// GetMood handles GET /api/v1/mood.
func (h *Handler) GetMood(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, newMoodResponse(s.Mood.Current()))
}

// RecordMood handles POST /api/v1/mood with {"happiness": 1-10, "energy": 1-10}.
func (h *Handler) RecordMood(w http.ResponseWriter, r *http.Request) {
	var in mood.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	sample, err := s.Mood.Record(in.Happiness, in.Energy)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, newMoodResponse(sample))
}

// GetMoodHistory handles GET /api/v1/mood/history, newest first.
func (h *Handler) GetMoodHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, s.Mood.History())
}
