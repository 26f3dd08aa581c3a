// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animenotes/internal/recommend/tfidf"
)

// ErrNilTarget is returned when FindSimilar is called without a target.
var ErrNilTarget = errors.New("recommend: nil target post")

// Engine answers similar-post and history-based recommendation queries.
//
// Every call builds its own term model from the pool it is given and drops it
// on return, so an Engine is safe for concurrent use and calls never observe
// each other's pools.
type Engine struct {
	config Config
	logger zerolog.Logger

	requestCount atomic.Int64
	targetMisses atomic.Int64
	skippedPosts atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests     int64 `json:"requests"`
	TargetMisses int64 `json:"target_misses"`
	SkippedPosts int64 `json:"skipped_posts"`
}

// NewEngine creates an engine with the given defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine defaults.
func (e *Engine) Config() Config {
	return e.config
}

// DefaultSimilarOptions returns FindSimilar options populated from the
// engine defaults.
func (e *Engine) DefaultSimilarOptions() SimilarOptions {
	return SimilarOptions{
		Limit:    e.config.Limit,
		MinScore: e.config.MinScore,
	}
}

// DefaultHistoryOptions returns FromHistory options populated from the
// engine defaults.
func (e *Engine) DefaultHistoryOptions() HistoryOptions {
	return HistoryOptions{
		Limit:           e.config.Limit,
		DiversityFactor: e.config.DiversityFactor,
	}
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:     e.requestCount.Load(),
		TargetMisses: e.targetMisses.Load(),
		SkippedPosts: e.skippedPosts.Load(),
	}
}

// FindSimilar returns the posts in pool most similar to target, best first.
//
// The target is located in pool by ID. When it is absent the call logs and
// returns an empty result with a nil error. The only errors are a nil target
// and a canceled context.
//
// A nil opts uses DefaultSimilarOptions.
func (e *Engine) FindSimilar(ctx context.Context, target *Post, pool []Post, opts *SimilarOptions) ([]ScoredPost, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		d := e.DefaultSimilarOptions()
		opts = &d
	}

	e.requestCount.Add(1)
	start := time.Now()

	pool = e.sanitizePool(pool)
	model := BuildModel(pool)

	targetIdx := indexOf(pool, target.ID)
	if targetIdx < 0 {
		e.targetMisses.Add(1)
		e.logger.Warn().
			Str("post_id", target.ID).
			Int("pool_size", len(pool)).
			Msg("target post not found in candidate pool")
		return []ScoredPost{}, nil
	}

	exclude := make(map[string]struct{}, len(opts.ExcludeIDs))
	for _, id := range opts.ExcludeIDs {
		exclude[id] = struct{}{}
	}

	weights := e.config.Weights.Merge(opts.Weights)
	results := rankAgainst(target, targetIdx, pool, model, weights, opts.MinScore, exclude, opts.Limit)

	e.logger.Debug().
		Str("post_id", target.ID).
		Int("pool_size", len(pool)).
		Int("returned", len(results)).
		Dur("latency", time.Since(start)).
		Msg("similar posts computed")

	return results, nil
}

// FromHistory recommends posts from an ordered history of seed posts, most
// relevant seed first.
//
// Seed i contributes its similar posts with weight 1/(i+1); a candidate
// similar to several seeds accumulates the weighted scores. Seeds never
// appear in the result. Seeds missing from pool contribute nothing.
//
// A nil opts uses DefaultHistoryOptions.
func (e *Engine) FromHistory(ctx context.Context, seeds []Post, pool []Post, opts *HistoryOptions) ([]ScoredPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		d := e.DefaultHistoryOptions()
		opts = &d
	}

	e.requestCount.Add(1)
	start := time.Now()

	pool = e.sanitizePool(pool)

	// One model serves every seed: the pool is the same for all of them.
	model := BuildModel(pool)

	index := make(map[string]int, len(pool))
	for i := range pool {
		index[pool[i].ID] = i
	}

	exclude := make(map[string]struct{}, len(seeds))
	for i := range seeds {
		exclude[seeds[i].ID] = struct{}{}
	}

	weights := e.config.Weights.Merge(opts.Weights)
	perSeedLimit := opts.Limit * 2

	totals := make(map[string]float64)
	var order []int // pool indexes in first-seen order

	for i := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seed := &seeds[i]
		seedIdx, ok := index[seed.ID]
		if !ok {
			e.targetMisses.Add(1)
			e.logger.Warn().
				Str("post_id", seed.ID).
				Msg("seed post not found in candidate pool")
			continue
		}

		seedWeight := 1 / float64(i+1)
		similar := rankAgainst(seed, seedIdx, pool, model, weights, e.config.MinScore, exclude, perSeedLimit)
		for _, s := range similar {
			if _, seen := totals[s.Post.ID]; !seen {
				order = append(order, index[s.Post.ID])
			}
			totals[s.Post.ID] += s.Score * seedWeight
		}
	}

	accumulated := make([]ScoredPost, 0, len(order))
	for _, idx := range order {
		p := pool[idx]
		accumulated = append(accumulated, ScoredPost{Post: p, Score: totals[p.ID]})
	}
	sortByScore(accumulated)

	var results []ScoredPost
	if opts.DiversityFactor > 0 {
		results = Diversify(accumulated, opts.Limit, opts.DiversityFactor)
	} else {
		results = truncate(accumulated, opts.Limit)
	}

	e.logger.Debug().
		Int("seeds", len(seeds)).
		Int("pool_size", len(pool)).
		Int("candidates", len(accumulated)).
		Int("returned", len(results)).
		Float64("diversity_factor", opts.DiversityFactor).
		Dur("latency", time.Since(start)).
		Msg("history recommendations computed")

	return results, nil
}

// rankAgainst scores every pool entry except the target and excluded IDs,
// keeps those at or above minScore, and returns the best limit of them.
func rankAgainst(target *Post, targetIdx int, pool []Post, model *tfidf.Model, w Weights, minScore float64, exclude map[string]struct{}, limit int) []ScoredPost {
	targetVec := model.VectorOf(targetIdx)

	var scored []ScoredPost
	for i := range pool {
		cand := &pool[i]
		if i == targetIdx || cand.ID == target.ID {
			continue
		}
		if _, skip := exclude[cand.ID]; skip {
			continue
		}

		score, breakdown := Score(target, cand, targetVec, model.VectorOf(i), w)
		if score < minScore {
			continue
		}
		b := breakdown
		scored = append(scored, ScoredPost{Post: *cand, Score: score, Breakdown: &b})
	}

	sortByScore(scored)
	return truncate(scored, limit)
}

// sanitizePool drops entries without an ID and repeated IDs (first wins).
// The input slice is returned unchanged when nothing is dropped.
func (e *Engine) sanitizePool(pool []Post) []Post {
	seen := make(map[string]struct{}, len(pool))
	clean := true
	for i := range pool {
		id := pool[i].ID
		if _, dup := seen[id]; id == "" || dup {
			clean = false
			break
		}
		seen[id] = struct{}{}
	}
	if clean {
		return pool
	}

	seen = make(map[string]struct{}, len(pool))
	out := make([]Post, 0, len(pool))
	for i := range pool {
		p := pool[i]
		if p.ID == "" {
			e.skippedPosts.Add(1)
			e.logger.Warn().
				Int("position", i).
				Str("title", p.Title).
				Msg("skipping candidate without id")
			continue
		}
		if _, dup := seen[p.ID]; dup {
			e.skippedPosts.Add(1)
			e.logger.Warn().
				Str("post_id", p.ID).
				Msg("skipping duplicate candidate")
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func indexOf(pool []Post, id string) int {
	if id == "" {
		return -1
	}
	for i := range pool {
		if pool[i].ID == id {
			return i
		}
	}
	return -1
}

// sortByScore orders items by descending score, keeping input order on ties.
func sortByScore(items []ScoredPost) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

func truncate(items []ScoredPost, limit int) []ScoredPost {
	if limit <= 0 {
		return []ScoredPost{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	if items == nil {
		return []ScoredPost{}
	}
	return items
}
