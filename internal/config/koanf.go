// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/animenotes/internal/recommend"
)

// DefaultConfigPaths lists the paths searched for a config file, first match
// wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/animenotes/config.yaml",
	"/etc/animenotes/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			JWTSecret:          "",
			JWTIssuer:          "",
			TokenTTL:           24 * time.Hour,
			RateLimitReqs:      100,
			RateLimitWindow:    time.Minute,
			RateLimitDisabled:  false,
			WriteRateLimitReqs: 30,
			CORSOrigins:        []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Counters: CountersConfig{
			Backend:    CounterBackendBadger,
			RedisAddr:  "127.0.0.1:6379",
			RedisDB:    0,
			BadgerPath: "",
			Timeout:    300 * time.Millisecond,
			ViewWindow: 24 * time.Hour,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				OpenTimeout:  30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Cache: CacheConfig{
			MaxEntries: 500,
			TTL:        time.Hour,
		},
		Recommend: RecommendConfig{
			DefaultLimit:    recommend.DefaultLimit,
			MaxLimit:        50,
			MinScore:        recommend.DefaultMinScore,
			DiversityFactor: recommend.DefaultDiversityFactor,
			Weights:         recommend.DefaultWeights(),
		},
		Posts: PostsConfig{
			BadgerPath: "/data/posts",
			SeedFile:   "",
		},
		Maintenance: MaintenanceConfig{
			Enabled:            true,
			CacheSweepSchedule: "@every 5m",
			StoreProbeSchedule: "@every 30s",
		},
	}
}

// Load builds the configuration in three layers:
//  1. Defaults
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables listed in envMappings
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variables (lowercased) to config paths.
// Unlisted variables are ignored so unrelated environment does not leak in.
var envMappings = map[string]string{
	// Server
	"http_host":          "server.host",
	"http_port":          "server.port",
	"http_read_timeout":  "server.read_timeout",
	"http_write_timeout": "server.write_timeout",
	"http_idle_timeout":  "server.idle_timeout",
	"shutdown_timeout":   "server.shutdown_timeout",
	"environment":        "server.environment",

	// Security
	"jwt_secret":                "security.jwt_secret",
	"jwt_issuer":                "security.jwt_issuer",
	"token_ttl":                 "security.token_ttl",
	"rate_limit_requests":       "security.rate_limit_reqs",
	"rate_limit_window":         "security.rate_limit_window",
	"disable_rate_limit":        "security.rate_limit_disabled",
	"write_rate_limit_requests": "security.write_rate_limit_reqs",
	"cors_origins":              "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Counters
	"counter_backend":       "counters.backend",
	"redis_addr":            "counters.redis_addr",
	"redis_password":        "counters.redis_password",
	"redis_db":              "counters.redis_db",
	"counter_badger_path":   "counters.badger_path",
	"counter_timeout":       "counters.timeout",
	"view_window":           "counters.view_window",
	"breaker_max_requests":  "counters.breaker.max_requests",
	"breaker_interval":      "counters.breaker.interval",
	"breaker_open_timeout":  "counters.breaker.open_timeout",
	"breaker_min_requests":  "counters.breaker.min_requests",
	"breaker_failure_ratio": "counters.breaker.failure_ratio",

	// Cache
	"cache_max_entries": "cache.max_entries",
	"cache_ttl":         "cache.ttl",

	// Recommendation engine
	"recommend_default_limit":     "recommend.default_limit",
	"recommend_max_limit":         "recommend.max_limit",
	"recommend_min_score":         "recommend.min_score",
	"recommend_diversity_factor":  "recommend.diversity_factor",
	"recommend_weight_content":    "recommend.weights.content",
	"recommend_weight_tags":       "recommend.weights.tags",
	"recommend_weight_category":   "recommend.weights.category",
	"recommend_weight_anime":      "recommend.weights.anime",
	"recommend_weight_engagement": "recommend.weights.engagement",

	// Posts
	"posts_db_path":   "posts.badger_path",
	"posts_seed_file": "posts.seed_file",

	// Maintenance
	"maintenance_enabled":  "maintenance.enabled",
	"cache_sweep_schedule": "maintenance.cache_sweep_schedule",
	"store_probe_schedule": "maintenance.store_probe_schedule",
}

// envTransformFunc maps an environment variable name to its config path, or
// "" to skip it.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - COUNTER_BACKEND -> counters.backend
//   - RECOMMEND_WEIGHT_TAGS -> recommend.weights.tags
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
