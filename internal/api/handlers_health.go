// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/animenotes/internal/engagement"
)

// Counter store states reported by the health endpoint.
const (
	storeUp       = "up"
	storeDown     = "down"
	storeDisabled = "disabled"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Success       bool    `json:"success"`
	Status        string  `json:"status"`
	CounterStore  string  `json:"counterStore"`
	Breaker       string  `json:"breaker"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
	Timestamp     string  `json:"timestamp"`
}

// Health handles GET /health. It answers 200 while the process serves
// requests; an unreachable counter store only changes status to "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	store := storeUp
	if err := h.counters.Ping(r.Context()); err != nil {
		store = storeDown
		if errors.Is(err, engagement.ErrStoreDisabled) {
			store = storeDisabled
		}
	}

	status := "healthy"
	if store == storeDown {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, &HealthResponse{
		Success:       true,
		Status:        status,
		CounterStore:  store,
		Breaker:       h.counters.BreakerState(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthLive handles GET /health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"alive":   true,
	})
}
