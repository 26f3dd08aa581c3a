// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package cache

// Cacher is the key/value store with TTL that the API caches responses in.
type Cacher[V any] interface {
	// Get returns the value and true if found and not expired.
	Get(key string) (V, bool)

	// Set stores a value with the default TTL.
	Set(key string, value V)

	// Delete removes a value, reporting whether it existed.
	Delete(key string) bool

	// Clear removes every entry.
	Clear()

	// Stats returns counters for monitoring.
	Stats() Stats
}

// Stats holds cache counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

// HitRate returns hits as a percentage of lookups, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

var _ Cacher[int] = (*LRU[int])(nil)
