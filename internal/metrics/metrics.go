// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

// Package metrics holds the Prometheus collectors for MoodMate.
//
// All collectors are registered on the default registry through promauto and
// exposed by the HTTP server at /metrics. Components call the Record* helpers
// rather than touching collectors directly.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Engine Metrics
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmate_generations_total",
			Help: "Total number of recommendation generations",
		},
		[]string{"domain", "result"}, // result: success, empty, error, stale
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodmate_generation_duration_seconds",
			Help:    "Recommendation generation duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"domain"},
	)

	GenerationItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodmate_generation_items",
			Help:    "Number of items returned per generation",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"domain"},
	)

	// Credit Metrics
	CreditsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodmate_credits_consumed_total",
			Help: "Total number of credits consumed by generations",
		},
	)

	CreditsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmate_credits_granted_total",
			Help: "Total number of credits granted",
		},
		[]string{"source"}, // pack, ad, subscription, refund
	)

	InsufficientCredits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodmate_insufficient_credits_total",
			Help: "Total number of generations refused for lack of credits",
		},
	)

	// Swipe and Favorites Metrics
	SwipeDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmate_swipe_decisions_total",
			Help: "Total number of swipe decisions",
		},
		[]string{"domain", "decision"}, // decision: accept, reject, undo
	)

	FavoritesOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmate_favorites_operations_total",
			Help: "Total number of favorites store operations",
		},
		[]string{"operation", "changed"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodmate_active_sessions",
			Help: "Current number of open user sessions",
		},
	)

	// Storage Metrics
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodmate_storage_operation_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmate_storage_errors_total",
			Help: "Total number of persistence errors",
		},
		[]string{"backend", "operation"},
	)

	// Write-behind Queue Metrics
	WALPendingEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodmate_wal_pending_entries",
			Help: "Current number of durable writes waiting for replay",
		},
	)

	WALEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmate_wal_enqueued_total",
			Help: "Total number of writes queued after a storage failure",
		},
		[]string{"kind"},
	)

	WALRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmate_wal_retries_total",
			Help: "Total number of replay attempts",
		},
		[]string{"result"}, // success, failure
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog Cache Metrics
	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodmate_catalog_cache_hits_total",
			Help: "Total number of catalog cache hits",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodmate_catalog_cache_misses_total",
			Help: "Total number of catalog cache misses",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordGeneration records the outcome of one engine call.
func RecordGeneration(domain, result string, items int, duration time.Duration) {
	GenerationsTotal.WithLabelValues(domain, result).Inc()
	GenerationDuration.WithLabelValues(domain).Observe(duration.Seconds())
	if result == "success" || result == "empty" {
		GenerationItems.WithLabelValues(domain).Observe(float64(items))
	}
}

// RecordCreditConsumed counts one successful Consume.
func RecordCreditConsumed() {
	CreditsConsumed.Inc()
}

// RecordCreditGrant counts credits added by source.
func RecordCreditGrant(source string, amount int) {
	if amount <= 0 {
		return
	}
	CreditsGranted.WithLabelValues(source).Add(float64(amount))
}

// RecordInsufficientCredits counts a refused generation.
func RecordInsufficientCredits() {
	InsufficientCredits.Inc()
}

// RecordSwipeDecision counts accept, reject and undo.
func RecordSwipeDecision(domain, decision string) {
	SwipeDecisions.WithLabelValues(domain, decision).Inc()
}

// RecordFavoritesOperation counts add/remove and whether the set changed.
func RecordFavoritesOperation(operation string, changed bool) {
	FavoritesOperations.WithLabelValues(operation, strconv.FormatBool(changed)).Inc()
}

// RecordStorageOperation records a persistence call.
func RecordStorageOperation(backend, operation string, duration time.Duration, err error) {
	StorageOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StorageErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordWALEnqueue counts a write diverted to the pending queue.
func RecordWALEnqueue(kind string) {
	WALEnqueued.WithLabelValues(kind).Inc()
}

// RecordWALRetry counts one replay attempt.
func RecordWALRetry(success bool) {
	if success {
		WALRetries.WithLabelValues("success").Inc()
	} else {
		WALRetries.WithLabelValues("failure").Inc()
	}
}

// SetWALPending updates the pending gauge.
func SetWALPending(n int) {
	WALPendingEntries.Set(float64(n))
}

// RecordCatalogCache counts a cache lookup.
func RecordCatalogCache(hit bool) {
	if hit {
		CatalogCacheHits.Inc()
	} else {
		CatalogCacheMisses.Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
