// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/animenotes/internal/config"
	"github.com/tomtom215/animenotes/internal/engagement"
)

func TestNewCounterStore(t *testing.T) {
	repo, err := openPosts(&config.PostsConfig{})
	if err != nil {
		t.Fatalf("openPosts: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	tests := []struct {
		name     string
		cfg      config.CountersConfig
		wantNil  bool
		wantType string
		wantErr  bool
	}{
		{name: "disabled", cfg: config.CountersConfig{Backend: config.CounterBackendDisabled}, wantNil: true},
		{name: "badger shares post db", cfg: config.CountersConfig{Backend: config.CounterBackendBadger}, wantType: "badger"},
		{name: "badger own dir", cfg: config.CountersConfig{Backend: config.CounterBackendBadger, BadgerPath: t.TempDir()}, wantType: "badger"},
		{name: "redis", cfg: config.CountersConfig{Backend: config.CounterBackendRedis, RedisAddr: "127.0.0.1:1"}, wantType: "redis"},
		{name: "unknown", cfg: config.CountersConfig{Backend: "memcached"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := newCounterStore(&tt.cfg, repo)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("newCounterStore: %v", err)
			}
			if tt.wantNil {
				if store != nil {
					t.Fatalf("store = %T, want nil", store)
				}
				return
			}
			t.Cleanup(func() { _ = store.Close() })

			switch tt.wantType {
			case "badger":
				if _, ok := store.(*engagement.BadgerStore); !ok {
					t.Errorf("store = %T, want *engagement.BadgerStore", store)
				}
			case "redis":
				if _, ok := store.(*engagement.RedisStore); !ok {
					t.Errorf("store = %T, want *engagement.RedisStore", store)
				}
			}
		})
	}
}

func TestNewCounterStore_SharedDBSurvivesClose(t *testing.T) {
	repo, err := openPosts(&config.PostsConfig{})
	if err != nil {
		t.Fatalf("openPosts: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	store, err := newCounterStore(&config.CountersConfig{Backend: config.CounterBackendBadger}, repo)
	if err != nil {
		t.Fatalf("newCounterStore: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := repo.Count(context.Background()); err != nil {
		t.Errorf("post repository unusable after counter store Close: %v", err)
	}
}

func TestOpenPosts_Seed(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
- id: p1
  title: Frieren episode 1
  animeName: Frieren
  tags: [fantasy]
- id: p2
  title: Frieren episode 2
  animeName: Frieren
  tags: [fantasy]
`
	if err := os.WriteFile(seed, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	repo, err := openPosts(&config.PostsConfig{SeedFile: seed})
	if err != nil {
		t.Fatalf("openPosts: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestOpenPosts_MissingSeed(t *testing.T) {
	if _, err := openPosts(&config.PostsConfig{SeedFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatal("expected error for missing seed file")
	}
}

func TestCounterOptions(t *testing.T) {
	cfg := config.CountersConfig{
		Timeout:    250 * time.Millisecond,
		ViewWindow: time.Hour,
		Breaker: config.BreakerConfig{
			MaxRequests:  2,
			Interval:     time.Minute,
			OpenTimeout:  10 * time.Second,
			MinRequests:  4,
			FailureRatio: 0.5,
		},
	}
	opts := counterOptions(&cfg)
	if opts.Timeout != cfg.Timeout || opts.ViewWindow != cfg.ViewWindow {
		t.Errorf("timeouts = %v/%v", opts.Timeout, opts.ViewWindow)
	}
	if opts.Breaker.MaxRequests != 2 || opts.Breaker.MinRequests != 4 || opts.Breaker.FailureRatio != 0.5 {
		t.Errorf("breaker = %+v", opts.Breaker)
	}
}

func TestChiConfigAndServer(t *testing.T) {
	sec := config.SecurityConfig{
		CORSOrigins:       []string{"https://notes.example"},
		RateLimitReqs:     42,
		RateLimitWindow:   30 * time.Second,
		RateLimitDisabled: true,
	}
	c := chiConfig(&sec)
	if len(c.CORSAllowedOrigins) != 1 || c.RateLimitRequests != 42 || c.RateLimitWindow != 30*time.Second || !c.RateLimitDisabled {
		t.Errorf("chiConfig = %+v", c)
	}
	if len(c.CORSAllowedMethods) == 0 {
		t.Error("default CORS methods should be kept")
	}

	srv := newHTTPServer(&config.ServerConfig{Host: "::1", Port: 3000, ReadTimeout: time.Second}, nil)
	if srv.Addr != "[::1]:3000" {
		t.Errorf("Addr = %q, want [::1]:3000", srv.Addr)
	}
	if srv.ReadHeaderTimeout != readHeaderTimeout {
		t.Errorf("ReadHeaderTimeout = %v", srv.ReadHeaderTimeout)
	}
}
