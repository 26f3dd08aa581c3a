// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package config loads service configuration from defaults, an optional YAML
// file and environment variables, in increasing order of precedence.
package config

import (
	"time"

	"github.com/tomtom215/animenotes/internal/recommend"
)

// Counter store backends.
const (
	CounterBackendRedis    = "redis"
	CounterBackendBadger   = "badger"
	CounterBackendDisabled = "disabled"
)

// Config is the complete service configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
	Counters    CountersConfig    `koanf:"counters"`
	Cache       CacheConfig       `koanf:"cache"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Posts       PostsConfig       `koanf:"posts"`
	Maintenance MaintenanceConfig `koanf:"maintenance"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// SecurityConfig holds token, CORS and rate limit settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	// WriteRateLimitReqs applies per window to the view and like endpoints.
	WriteRateLimitReqs int      `koanf:"write_rate_limit_reqs"`
	CORSOrigins        []string `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CountersConfig selects and tunes the engagement counter store.
type CountersConfig struct {
	Backend       string        `koanf:"backend"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	BadgerPath    string        `koanf:"badger_path"`
	Timeout       time.Duration `koanf:"timeout"`
	ViewWindow    time.Duration `koanf:"view_window"`
	Breaker       BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the counter store circuit breaker.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	OpenTimeout  time.Duration `koanf:"open_timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// CacheConfig sizes the recommendation response cache.
type CacheConfig struct {
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`
}

// RecommendConfig holds engine defaults and request bounds.
type RecommendConfig struct {
	DefaultLimit    int               `koanf:"default_limit"`
	MaxLimit        int               `koanf:"max_limit"`
	MinScore        float64           `koanf:"min_score"`
	DiversityFactor float64           `koanf:"diversity_factor"`
	Weights         recommend.Weights `koanf:"weights"`
}

// EngineConfig converts the section to the engine's configuration.
func (r RecommendConfig) EngineConfig() recommend.Config {
	return recommend.Config{
		Weights:         r.Weights,
		Limit:           r.DefaultLimit,
		MinScore:        r.MinScore,
		DiversityFactor: r.DiversityFactor,
	}
}

// PostsConfig locates the post database and its optional seed file.
type PostsConfig struct {
	// BadgerPath is the post database directory; empty keeps posts in memory.
	BadgerPath string `koanf:"badger_path"`
	SeedFile   string `koanf:"seed_file"`
}

// MaintenanceConfig schedules background jobs. Schedules use cron syntax
// including descriptors such as "@every 5m".
type MaintenanceConfig struct {
	Enabled            bool   `koanf:"enabled"`
	CacheSweepSchedule string `koanf:"cache_sweep_schedule"`
	StoreProbeSchedule string `koanf:"store_probe_schedule"`
}

// IsProduction reports whether the service runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
