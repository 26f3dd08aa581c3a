// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// Collectors are registered with the default registry at package init via
// promauto. Callers record through the Record* helpers rather than touching
// the vectors directly so label sets stay consistent.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent computing recommendations",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"mode"}, // mode: "similar", "personalized"
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of posts returned per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	// Response Cache Metrics
	ResponseCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Recommendation responses served from cache",
		},
		[]string{"kind"},
	)

	ResponseCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Recommendation responses computed because the cache missed",
		},
		[]string{"kind"},
	)

	ResponseCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "response_cache_entries",
			Help: "Entries currently held by the response cache",
		},
	)

	// Counter Store Metrics
	CounterStoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "counter_store_operations_total",
			Help: "Engagement counter store operations",
		},
		[]string{"op", "result"}, // result: "ok", "error", "disabled"
	)

	CounterStoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "counter_store_up",
			Help: "Whether the counter store answered the last health probe (1=up, 0=down)",
		},
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
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records latency and result count for one engine call.
func RecordRecommendation(mode string, duration time.Duration, results int) {
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(mode).Observe(float64(results))
}

// RecordCacheLookup counts a response cache hit or miss.
func RecordCacheLookup(kind string, hit bool) {
	if hit {
		ResponseCacheHits.WithLabelValues(kind).Inc()
		return
	}
	ResponseCacheMisses.WithLabelValues(kind).Inc()
}

// RecordCounterOp counts one counter store call.
func RecordCounterOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CounterStoreOps.WithLabelValues(op, result).Inc()
}

// SetCounterStoreUp records the outcome of a store health probe.
func SetCounterStoreUp(up bool) {
	if up {
		CounterStoreUp.Set(1)
		return
	}
	CounterStoreUp.Set(0)
}

// RecordBreakerTransition updates the state gauge and counts the transition.
// States are the numeric encodings used by circuit_breaker_state.
func RecordBreakerTransition(name, from, to string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}
