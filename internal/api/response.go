// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/animenotes/internal/logging"
	"github.com/tomtom215/animenotes/internal/validation"
)

// ErrorBody is the machine-readable part of an error response.
type ErrorBody struct {
	Code      string                 `json:"code"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   ErrorBody `json:"error"`
}

// respondJSON writes v with status. Encoding failures are logged; the status
// line has already been sent by then.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"An unexpected error occurred","error":{"code":"INTERNAL_ERROR"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("failed to write JSON response")
	}
}

// respondError writes the error envelope. err, when set, is logged with the
// request context and never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Err(err).Str("code", code).Str("path", r.URL.Path).Msg("request failed")
	}

	respondJSON(w, status, &ErrorResponse{
		Success: false,
		Message: message,
		Error: ErrorBody{
			Code:      code,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondValidationError writes a 400 carrying the field-level details.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondJSON(w, http.StatusBadRequest, &ErrorResponse{
		Success: false,
		Message: apiErr.Message,
		Error: ErrorBody{
			Code:      apiErr.Code,
			Details:   apiErr.Details,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondBadParam writes a 400 for a malformed query or path parameter.
func respondBadParam(w http.ResponseWriter, r *http.Request, param, message string) {
	respondJSON(w, http.StatusBadRequest, &ErrorResponse{
		Success: false,
		Message: message,
		Error: ErrorBody{
			Code:      ErrCodeValidation,
			Details:   map[string]interface{}{"field": param},
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}

// notFound and methodNotAllowed replace chi's plain-text defaults.
func notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, msgRouteNotFound, nil)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, msgMethodNotAllow, nil)
}

func unauthorized(w http.ResponseWriter, r *http.Request, _ error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="animenotes"`)
	respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, msgUnauthorized, nil)
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, msgRateLimited, nil)
}
