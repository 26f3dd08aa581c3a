// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

/*
Package main is the entry point for the Animenotes API server.

Animenotes serves content-based recommendations for anime notes posts and
counts views and likes on them.

# Application Architecture

	RootSupervisor ("animenotes")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Maintenance (cron: cache sweep, counter store probe)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file, environment
 2. Logging: zerolog with JSON/console output
 3. Posts: BadgerDB repository, optionally seeded from a YAML/JSON file
 4. Counters: Redis, BadgerDB or disabled, behind a circuit breaker
 5. Recommendation engine and response cache
 6. JWT authentication
 7. Supervisor tree and HTTP server

# Configuration

Common environment variables:

	HTTP_PORT=3000
	JWT_SECRET=<32+ characters>
	COUNTER_BACKEND=redis|badger|disabled
	REDIS_ADDR=127.0.0.1:6379
	POSTS_DB_PATH=/data/posts
	POSTS_SEED_FILE=/data/seed.yaml
	LOG_LEVEL=info
	LOG_FORMAT=json

A YAML file is read from CONFIG_PATH or ./config.yaml when present.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to SHUTDOWN_TIMEOUT before the stores are closed.
*/
package main
