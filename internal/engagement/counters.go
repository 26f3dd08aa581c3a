// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package engagement

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animenotes/internal/metrics"
)

// Defaults for Options.
const (
	DefaultViewWindow = 24 * time.Hour
	DefaultTimeout    = 300 * time.Millisecond
)

// Options configures Counters.
type Options struct {
	// ViewWindow is how long a session's view of a post suppresses further
	// counting.
	ViewWindow time.Duration
	// Timeout bounds each store call.
	Timeout time.Duration
	Breaker BreakerConfig
}

// DefaultOptions returns a 24h view window and a 300ms store timeout.
func DefaultOptions() Options {
	return Options{
		ViewWindow: DefaultViewWindow,
		Timeout:    DefaultTimeout,
		Breaker:    DefaultBreakerConfig(),
	}
}

// LikeResult is the outcome of ToggleLike.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

// Counters records and reads view and like counts. It is safe for concurrent
// use. A Counters with a nil store is disabled and answers with zero values.
type Counters struct {
	store      Store
	guard      *guard
	viewWindow time.Duration
	logger     zerolog.Logger
}

// NewCounters creates the service. Pass a nil store to disable counting.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCounters(store Store, opts Options, logger zerolog.Logger) *Counters {
	if opts.ViewWindow <= 0 {
		opts.ViewWindow = DefaultViewWindow
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Breaker.MaxRequests == 0 {
		opts.Breaker = DefaultBreakerConfig()
	}

	return &Counters{
		store:      store,
		guard:      newGuard(opts.Timeout, opts.Breaker),
		viewWindow: opts.ViewWindow,
		logger:     logger.With().Str("component", "engagement").Logger(),
	}
}

// Enabled reports whether a store is configured.
func (c *Counters) Enabled() bool {
	return c.store != nil
}

// IncrementView counts a view of postID by sessionID unless the session
// already viewed the post within the view window. It reports whether the
// view was counted.
//
// The marker and the counter are separate store writes. When the increment
// fails after the marker was created, the marker is removed again so the
// session can still be counted later. That rollback is best effort.
func (c *Counters) IncrementView(ctx context.Context, postID, sessionID string) bool {
	if !c.Enabled() {
		return false
	}

	var counted bool
	err := c.guard.do(ctx, "increment_view", func(ctx context.Context) error {
		created, err := c.store.SetMarker(ctx, viewMarkerKey(postID, sessionID), c.viewWindow)
		if err != nil || !created {
			return err
		}
		if _, err := c.store.IncrBy(ctx, viewsKey(postID), 1); err != nil {
			c.rollback(ctx, "increment_view", postID, func(ctx context.Context) error {
				_, err := c.store.DeleteMarker(ctx, viewMarkerKey(postID, sessionID))
				return err
			})
			return err
		}
		counted = true
		return nil
	})
	if err != nil {
		c.warn(err, "increment_view", postID)
		return false
	}
	return counted
}

// GetViewCount returns the view count of postID, 0 when unknown.
func (c *Counters) GetViewCount(ctx context.Context, postID string) int64 {
	return c.getCounter(ctx, "get_views", postID, viewsKey(postID))
}

// GetLikesCount returns the like count of postID, 0 when unknown.
func (c *Counters) GetLikesCount(ctx context.Context, postID string) int64 {
	return c.getCounter(ctx, "get_likes", postID, likesKey(postID))
}

// ToggleLike likes postID for userID, or removes the like if one exists.
// The reported count never goes below zero. When the store is unavailable
// nothing changes and the zero result is returned.
//
// If the counter update fails after the marker changed, the marker change
// is reverted on a best-effort basis so the marker keeps matching the count.
func (c *Counters) ToggleLike(ctx context.Context, postID, userID string) LikeResult {
	if !c.Enabled() {
		return LikeResult{}
	}

	var result LikeResult
	err := c.guard.do(ctx, "toggle_like", func(ctx context.Context) error {
		marker := likeMarkerKey(postID, userID)

		existed, err := c.store.DeleteMarker(ctx, marker)
		if err != nil {
			return err
		}
		if existed {
			n, err := c.store.IncrBy(ctx, likesKey(postID), -1)
			if err != nil {
				c.rollback(ctx, "toggle_like", postID, func(ctx context.Context) error {
					_, err := c.store.SetMarker(ctx, marker, 0)
					return err
				})
				return err
			}
			result = LikeResult{Liked: false, LikesCount: max(n, 0)}
			return nil
		}

		created, err := c.store.SetMarker(ctx, marker, 0)
		if err != nil {
			return err
		}
		if !created {
			// A concurrent toggle liked first; report its state.
			n, err := c.store.Get(ctx, likesKey(postID))
			if err != nil {
				return err
			}
			result = LikeResult{Liked: true, LikesCount: max(n, 0)}
			return nil
		}

		n, err := c.store.IncrBy(ctx, likesKey(postID), 1)
		if err != nil {
			c.rollback(ctx, "toggle_like", postID, func(ctx context.Context) error {
				_, err := c.store.DeleteMarker(ctx, marker)
				return err
			})
			return err
		}
		result = LikeResult{Liked: true, LikesCount: max(n, 0)}
		return nil
	})
	if err != nil {
		c.warn(err, "toggle_like", postID)
		return LikeResult{}
	}
	return result
}

// HasLiked reports whether userID currently likes postID.
func (c *Counters) HasLiked(ctx context.Context, postID, userID string) bool {
	if !c.Enabled() {
		return false
	}

	var liked bool
	err := c.guard.do(ctx, "has_liked", func(ctx context.Context) error {
		var err error
		liked, err = c.store.Exists(ctx, likeMarkerKey(postID, userID))
		return err
	})
	if err != nil {
		c.warn(err, "has_liked", postID)
		return false
	}
	return liked
}

// GetViewCounts returns view counts for ids in one store round trip.
// Every id is present in the result; unknown ids map to 0.
func (c *Counters) GetViewCounts(ctx context.Context, ids []string) map[string]int64 {
	return c.getCounters(ctx, "get_view_counts", ids, viewsKey)
}

// GetLikesCounts returns like counts for ids in one store round trip.
func (c *Counters) GetLikesCounts(ctx context.Context, ids []string) map[string]int64 {
	return c.getCounters(ctx, "get_likes_counts", ids, likesKey)
}

// Ping checks the store directly, bypassing the breaker so health probes
// observe recovery, and publishes the result as counter_store_up.
func (c *Counters) Ping(ctx context.Context) error {
	if !c.Enabled() {
		metrics.SetCounterStoreUp(false)
		return ErrStoreDisabled
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.guard.timeout)
	defer cancel()

	err := c.store.Ping(pingCtx)
	metrics.SetCounterStoreUp(err == nil)
	return err
}

// BreakerState returns the circuit breaker state as a string.
func (c *Counters) BreakerState() string {
	return c.guard.State().String()
}

// Close releases the store.
func (c *Counters) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.store.Close()
}

// rollback undoes a marker write whose counter update failed. The call
// context may already be past its deadline, so the undo gets a fresh
// timeout that still carries ctx's values.
func (c *Counters) rollback(ctx context.Context, op, postID string, undo func(ctx context.Context) error) {
	undoCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.guard.timeout)
	defer cancel()
	if err := undo(undoCtx); err != nil {
		c.logger.Warn().Err(err).Str("op", op).Str("post_id", postID).Msg("marker rollback failed")
	}
}

func (c *Counters) getCounter(ctx context.Context, op, postID, key string) int64 {
	if !c.Enabled() {
		return 0
	}

	var n int64
	err := c.guard.do(ctx, op, func(ctx context.Context) error {
		var err error
		n, err = c.store.Get(ctx, key)
		return err
	})
	if err != nil {
		c.warn(err, op, postID)
		return 0
	}
	return max(n, 0)
}

func (c *Counters) getCounters(ctx context.Context, op string, ids []string, keyFn func(string) string) map[string]int64 {
	out := make(map[string]int64, len(ids))
	for _, id := range ids {
		out[id] = 0
	}
	if !c.Enabled() || len(ids) == 0 {
		return out
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyFn(id)
	}

	var vals []int64
	err := c.guard.do(ctx, op, func(ctx context.Context) error {
		var err error
		vals, err = c.store.MGet(ctx, keys)
		return err
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("op", op).Int("ids", len(ids)).Msg("counter store unavailable")
		return out
	}

	for i, id := range ids {
		if i < len(vals) {
			out[id] = max(vals[i], 0)
		}
	}
	return out
}

func (c *Counters) warn(err error, op, postID string) {
	c.logger.Warn().Err(err).Str("op", op).Str("post_id", postID).Msg("counter store unavailable")
}
