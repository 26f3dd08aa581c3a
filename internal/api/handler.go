// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"time"

	"github.com/tomtom215/animenotes/internal/cache"
	"github.com/tomtom215/animenotes/internal/engagement"
	"github.com/tomtom215/animenotes/internal/posts"
	"github.com/tomtom215/animenotes/internal/recommend"
)

// recommendTimeout bounds pool construction plus ranking for one request.
const recommendTimeout = 10 * time.Second

// Options are the request defaults and bounds the handlers enforce.
type Options struct {
	DefaultLimit           int
	MaxLimit               int
	DefaultMinScore        float64
	DefaultDiversityFactor float64
}

// Handler serves the API endpoints.
type Handler struct {
	repo     posts.Repository
	counters *engagement.Counters
	engine   *recommend.Engine
	cache    cache.Cacher[[]recommend.ScoredPost]
	opts     Options

	startTime time.Time
}

// NewHandler wires the handler. Zero-valued options fall back to the
// engine's configuration.
func NewHandler(repo posts.Repository, counters *engagement.Counters, engine *recommend.Engine, c cache.Cacher[[]recommend.ScoredPost], opts Options) *Handler {
	ec := engine.Config()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = ec.Limit
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = opts.DefaultLimit
	}
	if opts.DefaultMinScore == 0 {
		opts.DefaultMinScore = ec.MinScore
	}
	if opts.DefaultDiversityFactor == 0 {
		opts.DefaultDiversityFactor = ec.DiversityFactor
	}

	return &Handler{
		repo:      repo,
		counters:  counters,
		engine:    engine,
		cache:     c,
		opts:      opts,
		startTime: time.Now(),
	}
}
