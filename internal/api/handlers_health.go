// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"net/http"
	"time"
)

// LivenessResponse is returned by the liveness probe.
type LivenessResponse struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime_seconds"`
}

// ReadinessResponse adds session and write-behind counters.
type ReadinessResponse struct {
	Status     string `json:"status"`
	Sessions   int    `json:"sessions"`
	WALPending int    `json:"wal_pending"`
}

// HealthLive handles GET /api/v1/health/live. It only reports that the
// process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready. A non-empty write-behind
// queue is reported as "degraded" but still ready: writes are accepted and
// replayed later.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{Status: "ready", Sessions: h.sessions.Len()}
	if h.pending != nil {
		resp.WALPending = h.pending.Pending()
	}
	if resp.WALPending > 0 {
		resp.Status = "degraded"
	}
	respondSuccess(w, r, http.StatusOK, resp)
}
