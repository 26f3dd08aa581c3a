// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"
)

const dockerProbeTimeout = 5 * time.Second

// dockerAvailable runs `docker info` to see whether a daemon answers.
func dockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), dockerProbeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// StartRedis starts a Redis container for the duration of t. The test is
// skipped when Docker is unavailable and fails if the container does not
// come up. The container is terminated in t.Cleanup.
func StartRedis(t *testing.T, opts ...RedisOption) *RedisContainer {
	t.Helper()

	if !dockerAvailable() {
		t.Skip("docker not available")
	}

	ctx := context.Background()
	rc, err := NewRedisContainer(ctx, opts...)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	t.Cleanup(func() {
		if err := rc.Terminate(context.Background()); err != nil {
			t.Logf("terminate redis container: %v", err)
		}
	})
	return rc
}

// Flush empties every Redis database so subtests start from zero counters.
func (rc *RedisContainer) Flush(ctx context.Context) error {
	code, _, err := rc.Exec(ctx, []string{"redis-cli", "FLUSHALL"})
	if err != nil {
		return fmt.Errorf("flush redis: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("flush redis: redis-cli exited %d", code)
	}
	return nil
}
