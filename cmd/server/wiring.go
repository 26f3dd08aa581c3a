// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/animenotes/internal/config"
	"github.com/tomtom215/animenotes/internal/engagement"
	"github.com/tomtom215/animenotes/internal/logging"
	"github.com/tomtom215/animenotes/internal/middleware"
	"github.com/tomtom215/animenotes/internal/posts"
)

const (
	redisDialTimeout  = 2 * time.Second
	redisPoolSize     = 20
	redisMinIdle      = 2
	seedTimeout       = 30 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// openPosts opens the post repository and loads the seed file when one is
// configured.
func openPosts(cfg *config.PostsConfig) (*posts.BadgerRepository, error) {
	repo, err := posts.OpenBadgerRepository(cfg.BadgerPath)
	if err != nil {
		return nil, err
	}
	if cfg.SeedFile == "" {
		return repo, nil
	}

	seed, err := posts.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	n, err := posts.Seed(ctx, repo, seed)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("seed posts from %s: %w", cfg.SeedFile, err)
	}
	logging.Info().Str("file", cfg.SeedFile).Int("posts", n).Msg("Seeded posts")
	return repo, nil
}

// newCounterStore picks the counter backend. It returns a nil Store when
// counting is disabled. With the badger backend and no path of its own, the
// counters share the post database.
func newCounterStore(cfg *config.CountersConfig, repo *posts.BadgerRepository) (engagement.Store, error) {
	switch cfg.Backend {
	case config.CounterBackendRedis:
		return engagement.NewRedisStore(engagement.RedisConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  redisDialTimeout,
			PoolSize:     redisPoolSize,
			MinIdleConns: redisMinIdle,
		}), nil
	case config.CounterBackendBadger:
		if cfg.BadgerPath == "" && repo != nil {
			return engagement.NewBadgerStore(repo.DB()), nil
		}
		return engagement.OpenBadgerStore(cfg.BadgerPath)
	case config.CounterBackendDisabled:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown counter backend %q", cfg.Backend)
	}
}

func counterOptions(cfg *config.CountersConfig) engagement.Options {
	return engagement.Options{
		ViewWindow: cfg.ViewWindow,
		Timeout:    cfg.Timeout,
		Breaker: engagement.BreakerConfig{
			MaxRequests:  cfg.Breaker.MaxRequests,
			Interval:     cfg.Breaker.Interval,
			OpenTimeout:  cfg.Breaker.OpenTimeout,
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
		},
	}
}

func chiConfig(cfg *config.SecurityConfig) *middleware.ChiConfig {
	c := middleware.DefaultChiConfig()
	c.CORSAllowedOrigins = cfg.CORSOrigins
	c.RateLimitRequests = cfg.RateLimitReqs
	c.RateLimitWindow = cfg.RateLimitWindow
	c.RateLimitDisabled = cfg.RateLimitDisabled
	return c
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
