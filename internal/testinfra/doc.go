// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package testinfra starts real backing services in Docker for integration
// tests.
//
// Everything except this file is behind the integration build tag:
//
//	go test -tags integration ./...
//
// # Redis
//
//	func TestCounters_Redis(t *testing.T) {
//	    rc := testinfra.StartRedis(t)
//	    store := engagement.NewRedisStore(engagement.RedisConfig{Addr: rc.Addr})
//	    // ...
//	}
//
// Tests are skipped when Docker is unavailable. The first run pulls the image.
package testinfra
