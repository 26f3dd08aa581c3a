// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

/*
Package api serves the recommendation and engagement HTTP endpoints.

Routes live under /api/v1 and are built on chi:

	GET  /api/v1/recommendations/similar/{postId}
	POST /api/v1/recommendations/personalized
	POST /api/v1/posts/{id}/view
	POST /api/v1/posts/{id}/like        (bearer token required)
	GET  /api/v1/posts/{id}/engagement  (bearer token optional)

plus GET /health and GET /metrics at the root.

Every recommendation request rebuilds the candidate pool from the post
repository and the live engagement counters. Only the engine's ranked
result is cached, keyed by the request parameters that influence ranking.

Errors use a single envelope:

	{"success": false, "message": "Post not found", "error": {"code": "NOT_FOUND"}}

Internal error details are logged, never returned.
*/
package api
