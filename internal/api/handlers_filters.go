// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"net/http"

	"github.com/tomtom215/moodmate/internal/filters"
	"github.com/tomtom215/moodmate/internal/models"
	"github.com/tomtom215/moodmate/internal/session"
)

// FiltersResponse shows the draft being edited and the filter in effect.
type FiltersResponse struct {
	Domain models.Domain `json:"domain"`
	Draft  interface{}   `json:"draft"`
	Active interface{}   `json:"active"`
}

func filtersView(s *session.Session, d models.Domain) FiltersResponse {
	if d == models.DomainMovie {
		return FiltersResponse{Domain: d, Draft: s.MovieFilters.Draft(), Active: s.MovieFilters.Active()}
	}
	return FiltersResponse{Domain: d, Draft: s.MusicFilters.Draft(), Active: s.MusicFilters.Active()}
}

// GetFilterOptions handles GET /api/v1/filters/options.
func (h *Handler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, filters.AllOptions())
}

// GetFilters handles GET /api/v1/filters/{domain}.
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, http.StatusOK, filtersView(s, d))
}

// PutFilterDraft handles PUT /api/v1/filters/{domain}. The body replaces
// the draft; nothing takes effect until apply.
func (h *Handler) PutFilterDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}

	var movie models.MovieFilter
	var music models.MusicFilter
	if d == models.DomainMovie {
		if !decodeJSON(w, r, &movie) {
			return
		}
	} else if !decodeJSON(w, r, &music) {
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if d == models.DomainMovie {
		s.MovieFilters.SetDraft(movie)
	} else {
		s.MusicFilters.SetDraft(music)
	}
	respondSuccess(w, r, http.StatusOK, filtersView(s, d))
}

// ApplyFilters handles POST /api/v1/filters/{domain}/apply. An invalid
// draft is rejected and the active filter is unchanged.
func (h *Handler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	h.filterAction(w, r, func(s *session.Session, d models.Domain) error {
		var err error
		if d == models.DomainMovie {
			_, err = s.MovieFilters.Apply()
		} else {
			_, err = s.MusicFilters.Apply()
		}
		return err
	})
}

// DiscardFilters handles POST /api/v1/filters/{domain}/discard.
func (h *Handler) DiscardFilters(w http.ResponseWriter, r *http.Request) {
	h.filterAction(w, r, func(s *session.Session, d models.Domain) error {
		if d == models.DomainMovie {
			s.MovieFilters.Discard()
		} else {
			s.MusicFilters.Discard()
		}
		return nil
	})
}

// ResetFilters handles POST /api/v1/filters/{domain}/reset.
func (h *Handler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	h.filterAction(w, r, func(s *session.Session, d models.Domain) error {
		if d == models.DomainMovie {
			s.MovieFilters.Reset()
		} else {
			s.MusicFilters.Reset()
		}
		return nil
	})
}

func (h *Handler) filterAction(w http.ResponseWriter, r *http.Request, fn func(*session.Session, models.Domain) error) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := fn(s, d); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, filtersView(s, d))
}
