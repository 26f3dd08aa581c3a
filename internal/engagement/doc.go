// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

/*
Package engagement tracks post views and likes in an external key-counter
store.

# Keys

	post:{id}:views            view counter
	post:{id}:likes            like counter
	view:{postId}:{sessionId}  view marker, expires after the view window (24h)
	like:{postId}:{userId}     like marker, no expiry

A view is counted at most once per session per window: the marker is set with
SETNX semantics and only the caller that created it increments the counter.
A like toggles: deleting an existing marker unlikes, otherwise the marker is
created and the counter incremented.

# Backends

RedisStore (go-redis) is the production backend. BadgerStore keeps the same
keys in an embedded Badger database for single-node deployments and tests.

# Degradation

Counters never returns errors. Every store call runs under a short timeout
inside a circuit breaker; when the store is disabled, failing or the breaker
is open, writes become no-ops and reads return zero values. Callers that need
to know whether counting is live use Enabled and Ping.
*/
package engagement
