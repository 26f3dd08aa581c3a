// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/animenotes/internal/auth"
	"github.com/tomtom215/animenotes/internal/cache"
	"github.com/tomtom215/animenotes/internal/config"
	"github.com/tomtom215/animenotes/internal/engagement"
	"github.com/tomtom215/animenotes/internal/logging"
	"github.com/tomtom215/animenotes/internal/middleware"
	"github.com/tomtom215/animenotes/internal/models"
	"github.com/tomtom215/animenotes/internal/posts"
	"github.com/tomtom215/animenotes/internal/recommend"
)

const testJWTSecret = "api-test-secret-0123456789abcdef0123"

func season(n int) *int { return &n }

func testPosts() []models.Post {
	return []models.Post{
		{
			ID: "p1", Title: "Frieren Episode 1 review", AnimeName: "Frieren", SeasonNumber: season(1),
			Category: "review", Tags: []string{"fantasy", "adventure"}, Status: models.StatusPublished,
			Excerpt: "Frieren begins her journey after the demon king falls.",
		},
		{
			ID: "p2", Title: "Frieren Episode 2 review", AnimeName: "Frieren", SeasonNumber: season(1),
			Category: "review", Tags: []string{"fantasy", "adventure"}, Status: models.StatusPublished,
			Excerpt: "Frieren and Fern continue the journey north.", Views: 40, Likes: 10,
		},
		{
			ID: "p3", Title: "Frieren season 2 announcement", AnimeName: "Frieren", SeasonNumber: season(2),
			Category: "news", Tags: []string{"fantasy"}, Status: models.StatusPublished,
			Excerpt: "A second season of Frieren has been announced.",
		},
		{
			ID: "p4", Title: "Dungeon Meshi cooking guide", AnimeName: "Dungeon Meshi",
			Category: "review", Tags: []string{"fantasy", "cooking"}, Status: models.StatusPublished,
			Excerpt: "Every monster dish from the dungeon, ranked.",
		},
		{
			ID: "p5", Title: "Spring mecha roundup", AnimeName: "Gundam",
			Category: "news", Tags: []string{"mecha", "action"}, Status: models.StatusPublished,
			Excerpt: "Giant robots return this spring.",
		},
		{
			ID: "d1", Title: "Frieren Episode 3 draft", AnimeName: "Frieren", SeasonNumber: season(1),
			Category: "review", Tags: []string{"fantasy", "adventure"}, Status: models.StatusDraft,
		},
	}
}

type testEnv struct {
	router   http.Handler
	handler  *Handler
	repo     *posts.BadgerRepository
	counters *engagement.Counters
	cache    *cache.LRU[[]recommend.ScoredPost]
	jwt      *auth.JWTManager
}

type envOption func(*envConfig)

type envConfig struct {
	disableCounters bool
	writeRateLimit  int
}

func withCountersDisabled() envOption {
	return func(c *envConfig) { c.disableCounters = true }
}

func withWriteRateLimit(n int) envOption {
	return func(c *envConfig) { c.writeRateLimit = n }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	var ec envConfig
	for _, o := range opts {
		o(&ec)
	}

	repo, err := posts.OpenBadgerRepository("")
	if err != nil {
		t.Fatalf("OpenBadgerRepository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if _, err := posts.Seed(context.Background(), repo, testPosts()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	logger := logging.NewTestLogger(io.Discard)

	var store engagement.Store
	if !ec.disableCounters {
		bs, err := engagement.OpenBadgerStore("")
		if err != nil {
			t.Fatalf("OpenBadgerStore: %v", err)
		}
		store = bs
	}
	counters := engagement.NewCounters(store, engagement.DefaultOptions(), logger)
	t.Cleanup(func() { _ = counters.Close() })

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	jwtManager, err := auth.NewJWTManager(&config.SecurityConfig{JWTSecret: testJWTSecret, TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	c := cache.NewLRU[[]recommend.ScoredPost](100, time.Hour)
	h := NewHandler(repo, counters, engine, c, Options{MaxLimit: 50})

	chiCfg := middleware.DefaultChiConfig()
	chiCfg.RateLimitDisabled = ec.writeRateLimit == 0
	router := NewRouter(h, NewAuthMiddleware(jwtManager), RouterConfig{
		Chi:            chiCfg,
		WriteRateLimit: ec.writeRateLimit,
	})

	return &testEnv{router: router, handler: h, repo: repo, counters: counters, cache: c, jwt: jwtManager}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := e.jwt.GenerateToken(userID, userID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func (e *testEnv) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&v); err != nil {
		t.Fatalf("decode %T: %v (body %s)", v, err, rec.Body.String())
	}
	return v
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Success {
		t.Error("success = true on error response")
	}
	if resp.Error.Code != code {
		t.Errorf("error.code = %q, want %q", resp.Error.Code, code)
	}
	if resp.Message == "" {
		t.Error("message is empty")
	}
}

func ids(results []PostResult) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = results[i].ID
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
