// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/animenotes/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the verified *Claims in the request context.
const ClaimsContextKey contextKey = "claims"

var (
	errMissingToken  = errors.New("missing bearer token")
	errInvalidHeader = errors.New("invalid authorization header")
)

// FailureFunc writes the response for a request that failed authentication.
type FailureFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware authenticates requests with bearer tokens.
type Middleware struct {
	jwtManager *JWTManager
	onFailure  FailureFunc
}

// NewMiddleware creates the middleware. A nil onFailure writes a plain 401.
func NewMiddleware(jwtManager *JWTManager, onFailure FailureFunc) *Middleware {
	if onFailure == nil {
		onFailure = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}
	}
	return &Middleware{jwtManager: jwtManager, onFailure: onFailure}
}

// RequireAuth rejects requests without a valid token.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("authentication failed")
			m.onFailure(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// OptionalAuth attaches claims when a valid token is present and otherwise
// serves the request anonymously.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		if err != nil {
			if !errors.Is(err, errMissingToken) {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("ignoring invalid token")
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

func (m *Middleware) authenticate(r *http.Request) (*Claims, error) {
	token, err := extractBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	return m.jwtManager.ValidateToken(token)
}

func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errInvalidHeader
	}
	return strings.TrimSpace(token), nil
}

// ContextWithClaims stores claims in ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext returns the verified claims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims)
	return claims
}

// UserIDFromContext returns the authenticated user ID, or "".
func UserIDFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.UserID()
	}
	return ""
}
