// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/animenotes/internal/auth"
	"github.com/tomtom215/animenotes/internal/middleware"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// Chi carries the CORS and general rate limit settings.
	Chi *middleware.ChiConfig

	// WriteRateLimit is the per-IP budget for the view and like endpoints
	// within Chi.RateLimitWindow.
	WriteRateLimit int
}

// NewRouter builds the HTTP handler.
func NewRouter(h *Handler, authMW *auth.Middleware, cfg RouterConfig) http.Handler {
	if cfg.Chi == nil {
		cfg.Chi = middleware.DefaultChiConfig()
	}
	if cfg.Chi.RateLimitOnLimit == nil {
		cfg.Chi.RateLimitOnLimit = rateLimited
	}
	mw := middleware.NewChi(cfg.Chi)

	r := chi.NewRouter()
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// Global middleware, outermost first.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", h.Health)
	r.Get("/health/live", h.HealthLive)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/similar/{postId}", h.GetSimilar)
			r.Post("/personalized", h.GetPersonalized)
		})

		r.Route("/posts/{id}", func(r chi.Router) {
			writeLimit := mw.RateLimitCustom(cfg.WriteRateLimit, rateWindow(cfg.Chi))

			r.With(writeLimit).Post("/view", h.RecordView)
			r.With(writeLimit, authMW.RequireAuth).Post("/like", h.ToggleLike)
			r.With(authMW.OptionalAuth).Get("/engagement", h.GetEngagement)
		})
	})

	return r
}

func rateWindow(cfg *middleware.ChiConfig) time.Duration {
	if cfg.RateLimitWindow > 0 {
		return cfg.RateLimitWindow
	}
	return time.Minute
}

// NewAuthMiddleware returns bearer auth middleware that answers failures
// with the JSON error envelope.
func NewAuthMiddleware(jwtManager *auth.JWTManager) *auth.Middleware {
	return auth.NewMiddleware(jwtManager, unauthorized)
}
