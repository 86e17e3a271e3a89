// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/moodmate/internal/auth"
	"github.com/tomtom215/moodmate/internal/middleware"
)

// Router wires handlers and middleware into a Chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
	tokens        *TokenHandler
}

// NewRouter creates a router.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: chiMiddleware,
	}
}

// ConfigureTokenIssuer enables POST /api/v1/auth/token.
func (router *Router) ConfigureTokenIssuer(tokens *TokenHandler) {
	router.tokens = tokens
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global middleware, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(middleware.SecurityHeaders)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	if router.tokens != nil {
		r.Route("/api/v1/auth", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitCustom(RateLimitAuth))
			r.Use(middleware.SecurityHeaders)
			r.Post("/token", router.tokens.IssueToken)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		r.Use(router.auth.Authenticate)

		r.Route("/mood", func(r chi.Router) {
			r.Get("/", h.GetMood)
			r.Post("/", h.RecordMood)
			r.Get("/history", h.GetMoodHistory)
		})

		r.Route("/weather", func(r chi.Router) {
			r.Get("/", h.GetWeather)
			r.Post("/refresh", h.RefreshWeather)
		})

		r.Route("/credits", func(r chi.Router) {
			r.Get("/", h.GetCredits)
			r.Get("/offers", h.GetOffers)
			r.Post("/purchase", h.PurchasePack)
			r.Post("/ad", h.WatchAd)
			r.Post("/subscribe", h.Subscribe)
		})

		r.Route("/filters", func(r chi.Router) {
			r.Get("/options", h.GetFilterOptions)
			r.Get("/{domain}", h.GetFilters)
			r.Put("/{domain}", h.PutFilterDraft)
			r.Post("/{domain}/apply", h.ApplyFilters)
			r.Post("/{domain}/discard", h.DiscardFilters)
			r.Post("/{domain}/reset", h.ResetFilters)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/recent", h.GetRecent)
			r.Get("/{domain}", h.GetRecommendations)
			r.Post("/{domain}/generate", h.GenerateRecommendations)
			r.Post("/{domain}/decide", h.Decide)
			r.Post("/{domain}/undo", h.Undo)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.ListFavorites)
			r.Post("/", h.AddFavorite)
			r.Delete("/{id}", h.RemoveFavorite)
			r.Post("/{id}/share", h.ShareFavorite)
		})
	})

	return r
}
