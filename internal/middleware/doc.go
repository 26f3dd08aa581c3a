// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

/*
Package middleware provides the chi middleware stack for the HTTP API.

Every middleware here has the func(http.Handler) http.Handler shape so it can
be passed straight to chi's Use and With:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)      // X-Request-ID + logging context
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())                 // go-chi/cors
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)
	r.With(mw.RateLimit()).Post("/api/v1/posts/{id}/view", h.RecordView)

PrometheusMetrics labels requests with the chi route pattern rather than the
raw path, so /api/v1/posts/p1/view and /api/v1/posts/p2/view share a series.
*/
package middleware
