// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

// Error codes returned in the error envelope.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// Client-facing messages.
const (
	msgPostNotFound   = "Post not found"
	msgNoSeedPosts    = "None of the requested posts were found"
	msgInternal       = "An unexpected error occurred"
	msgUnauthorized   = "Authentication required"
	msgInvalidBody    = "Request body must be valid JSON"
	msgRouteNotFound  = "Route not found"
	msgMethodNotAllow = "Method not allowed"
	msgRateLimited    = "Too many requests, please slow down"
)
