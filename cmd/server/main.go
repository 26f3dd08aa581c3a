// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/animenotes/internal/api"
	"github.com/tomtom215/animenotes/internal/auth"
	"github.com/tomtom215/animenotes/internal/cache"
	"github.com/tomtom215/animenotes/internal/config"
	"github.com/tomtom215/animenotes/internal/engagement"
	"github.com/tomtom215/animenotes/internal/logging"
	"github.com/tomtom215/animenotes/internal/recommend"
	"github.com/tomtom215/animenotes/internal/supervisor"
	"github.com/tomtom215/animenotes/internal/supervisor/services"
)

const startupPingTimeout = 2 * time.Second

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("counter_backend", cfg.Counters.Backend).
		Msg("Starting Animenotes")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS before exposing the API")
	}

	// === STORAGE ===

	repo, err := openPosts(&cfg.Posts)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open post repository")
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close post repository")
		}
	}()

	store, err := newCounterStore(&cfg.Counters, repo)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create counter store")
	}
	counters := engagement.NewCounters(store, counterOptions(&cfg.Counters), logging.WithComponent("engagement"))
	defer func() {
		if err := counters.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close counter store")
		}
	}()

	if counters.Enabled() {
		pingCtx, cancelPing := context.WithTimeout(context.Background(), startupPingTimeout)
		if err := counters.Ping(pingCtx); err != nil {
			// Counting degrades to zeros until the store comes back.
			logging.Warn().Err(err).Msg("Counter store unreachable at startup")
		}
		cancelPing()
	} else {
		logging.Info().Msg("Engagement counters disabled")
	}

	// === RECOMMENDATIONS ===

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	responses := cache.NewLRU[[]recommend.ScoredPost](cfg.Cache.MaxEntries, cfg.Cache.TTL)

	// === HTTP ===

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create JWT manager")
	}

	handler := api.NewHandler(repo, counters, engine, responses, api.Options{
		DefaultLimit:           cfg.Recommend.DefaultLimit,
		MaxLimit:               cfg.Recommend.MaxLimit,
		DefaultMinScore:        cfg.Recommend.MinScore,
		DefaultDiversityFactor: cfg.Recommend.DiversityFactor,
	})
	router := api.NewRouter(handler, api.NewAuthMiddleware(jwtManager), api.RouterConfig{
		Chi:            chiConfig(&cfg.Security),
		WriteRateLimit: cfg.Security.WriteRateLimitReqs,
	})
	server := newHTTPServer(&cfg.Server, router)

	// === SUPERVISOR TREE ===

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Maintenance.Enabled {
		var prober services.StoreProber
		if counters.Enabled() {
			prober = counters
		}
		maint, err := services.NewMaintenanceService(services.MaintenanceConfig{
			CacheSweepSchedule: cfg.Maintenance.CacheSweepSchedule,
			StoreProbeSchedule: cfg.Maintenance.StoreProbeSchedule,
			StopTimeout:        cfg.Server.ShutdownTimeout,
		}, responses, prober, logging.WithComponent("maintenance"))
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create maintenance service")
		}
		tree.AddMaintenanceService(maint)
		logging.Info().Int("jobs", maint.Jobs()).Msg("Maintenance service added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel carries exactly one result and is never closed.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Animenotes stopped")
}
