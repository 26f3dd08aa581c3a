// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package engagement

import (
	"context"
	"errors"
	"time"
)

// ErrStoreDisabled is returned by Counters.Ping when no store is configured.
var ErrStoreDisabled = errors.New("engagement: counter store disabled")

// Store is the set of atomic primitives the counters are built on.
// Implementations must make SetMarker, DeleteMarker and IncrBy atomic with
// respect to concurrent callers on the same key.
type Store interface {
	// SetMarker creates key if absent and reports whether this call created
	// it. A zero ttl means the marker never expires.
	SetMarker(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// DeleteMarker removes key and reports whether it existed.
	DeleteMarker(ctx context.Context, key string) (bool, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// IncrBy adds delta to the counter at key and returns the new value.
	// Absent counters start at zero.
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)

	// Get returns the counter at key, or 0 when absent.
	Get(ctx context.Context, key string) (int64, error)

	// MGet returns counters for keys in order, 0 for absent keys.
	MGet(ctx context.Context, keys []string) ([]int64, error)

	Ping(ctx context.Context) error
	Close() error
}

func viewsKey(postID string) string { return "post:" + postID + ":views" }
func likesKey(postID string) string { return "post:" + postID + ":likes" }

func viewMarkerKey(postID, sessionID string) string {
	return "view:" + postID + ":" + sessionID
}

func likeMarkerKey(postID, userID string) string {
	return "like:" + postID + ":" + userID
}
