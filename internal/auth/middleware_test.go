// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequireAuth(t *testing.T) {
	m := newTestManager(t, time.Hour)
	valid, _ := m.GenerateToken("user-7", "")

	var failures []error
	mw := NewMiddleware(m, func(w http.ResponseWriter, _ *http.Request, err error) {
		failures = append(failures, err)
		w.WriteHeader(http.StatusUnauthorized)
	})

	var gotUser string
	h := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantUser string
	}{
		{"valid bearer", "Bearer " + valid, http.StatusOK, "user-7"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "user-7"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"empty token", "Bearer  ", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			req := httptest.NewRequest(http.MethodPost, "/api/v1/posts/p1/like", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}

	if len(failures) != 4 {
		t.Errorf("failure callbacks = %d, want 4", len(failures))
	}
	if !errors.Is(failures[0], errMissingToken) {
		t.Errorf("first failure = %v, want errMissingToken", failures[0])
	}
}

func TestRequireAuth_DefaultFailure(t *testing.T) {
	mw := NewMiddleware(newTestManager(t, time.Hour), nil)
	rec := httptest.NewRecorder()
	mw.RequireAuth(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	m := newTestManager(t, time.Hour)
	valid, _ := m.GenerateToken("user-9", "")
	mw := NewMiddleware(m, nil)

	tests := []struct {
		name     string
		header   string
		wantUser string
	}{
		{"anonymous", "", ""},
		{"authenticated", "Bearer " + valid, "user-9"},
		{"invalid token served anonymously", "Bearer broken", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser string
			called := false
			h := mw.OptionalAuth(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				called = true
				gotUser = UserIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/p1/engagement", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if !called {
				t.Fatal("handler not called")
			}
			if gotUser != tt.wantUser {
				t.Errorf("user = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}
