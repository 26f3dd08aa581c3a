// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// sampleCount reads how many observations a histogram child has seen.
func sampleCount(t *testing.T, vec *prometheus.HistogramVec, label string) uint64 {
	t.Helper()
	obs, err := vec.GetMetricWithLabelValues(label)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%q): %v", label, err)
	}
	var m dto.Metric
	if err := obs.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		endpoint string
		status   int
	}{
		{"similar ok", http.MethodGet, "/api/v1/recommendations/similar/{postId}", http.StatusOK},
		{"personalized bad request", http.MethodPost, "/api/v1/recommendations/personalized", http.StatusBadRequest},
		{"like unauthorized", http.MethodPost, "/api/v1/posts/{id}/like", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, strconv.Itoa(tt.status))
			before := testutil.ToFloat64(c)

			RecordAPIRequest(tt.method, tt.endpoint, tt.status, 15*time.Millisecond)

			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("requests counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+2 {
		t.Errorf("in flight = %v, want %v", got, before+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("in flight = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	similar0 := sampleCount(t, RecommendationDuration, "similar")
	personalized0 := sampleCount(t, RecommendationResults, "personalized")

	RecordRecommendation("similar", 3*time.Millisecond, 4)
	RecordRecommendation("personalized", 7*time.Millisecond, 10)
	RecordRecommendation("personalized", 2*time.Millisecond, 0)

	if got := sampleCount(t, RecommendationDuration, "similar"); got != similar0+1 {
		t.Errorf("similar duration samples = %d, want %d", got, similar0+1)
	}
	if got := sampleCount(t, RecommendationResults, "personalized"); got != personalized0+2 {
		t.Errorf("personalized result samples = %d, want %d", got, personalized0+2)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := ResponseCacheHits.WithLabelValues("similar")
	misses := ResponseCacheMisses.WithLabelValues("similar")
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup("similar", true)
	RecordCacheLookup("similar", false)
	RecordCacheLookup("similar", false)

	if got := testutil.ToFloat64(hits); got != h0+1 {
		t.Errorf("hits = %v, want %v", got, h0+1)
	}
	if got := testutil.ToFloat64(misses); got != m0+2 {
		t.Errorf("misses = %v, want %v", got, m0+2)
	}
}

func TestRecordCounterOp(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "ok"},
		{"failure", errors.New("connection refused"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CounterStoreOps.WithLabelValues("incrby", tt.result)
			before := testutil.ToFloat64(c)
			RecordCounterOp("incrby", tt.err)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("%s ops = %v, want %v", tt.result, got, before+1)
			}
		})
	}
}

func TestSetCounterStoreUp(t *testing.T) {
	SetCounterStoreUp(true)
	if got := testutil.ToFloat64(CounterStoreUp); got != 1 {
		t.Errorf("up = %v, want 1", got)
	}
	SetCounterStoreUp(false)
	if got := testutil.ToFloat64(CounterStoreUp); got != 0 {
		t.Errorf("up = %v, want 0", got)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	tr := CircuitBreakerTransitions.WithLabelValues("counter-store", "closed", "open")
	before := testutil.ToFloat64(tr)

	RecordBreakerTransition("counter-store", "closed", "open", 2)

	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("counter-store")); got != 2 {
		t.Errorf("state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(tr); got != before+1 {
		t.Errorf("transitions = %v, want %v", got, before+1)
	}
}
