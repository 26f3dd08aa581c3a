// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/animenotes/internal/metrics"
)

// probeTimeout bounds one counter store probe.
const probeTimeout = 2 * time.Second

// ExpiringCache is the response cache as seen by the sweep job.
type ExpiringCache interface {
	CleanupExpired() int
	Len() int
}

// StoreProber checks the counter store. engagement.Counters satisfies it.
type StoreProber interface {
	Ping(ctx context.Context) error
}

// MaintenanceConfig holds the job schedules in standard five-field cron
// syntax or descriptors such as "@every 5m". An empty schedule disables the
// job.
type MaintenanceConfig struct {
	CacheSweepSchedule string
	StoreProbeSchedule string

	// StopTimeout bounds how long Serve waits for running jobs on shutdown.
	StopTimeout time.Duration
}

// MaintenanceService runs periodic housekeeping jobs.
type MaintenanceService struct {
	cron        *cron.Cron
	cache       ExpiringCache
	prober      StoreProber
	logger      zerolog.Logger
	stopTimeout time.Duration
	name        string
}

// NewMaintenanceService schedules the configured jobs. A nil cache or prober
// skips its job.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewMaintenanceService(cfg MaintenanceConfig, c ExpiringCache, prober StoreProber, logger zerolog.Logger) (*MaintenanceService, error) {
	logger = logger.With().Str("component", "maintenance").Logger()
	cronLogger := cronLog{logger: logger}

	s := &MaintenanceService{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		cache:       c,
		prober:      prober,
		logger:      logger,
		stopTimeout: cfg.StopTimeout,
		name:        "maintenance",
	}
	if s.stopTimeout <= 0 {
		s.stopTimeout = 10 * time.Second
	}

	if c != nil && cfg.CacheSweepSchedule != "" {
		if _, err := s.cron.AddFunc(cfg.CacheSweepSchedule, s.SweepCache); err != nil {
			return nil, fmt.Errorf("schedule cache sweep %q: %w", cfg.CacheSweepSchedule, err)
		}
	}
	if prober != nil && cfg.StoreProbeSchedule != "" {
		if _, err := s.cron.AddFunc(cfg.StoreProbeSchedule, s.ProbeStore); err != nil {
			return nil, fmt.Errorf("schedule store probe %q: %w", cfg.StoreProbeSchedule, err)
		}
	}
	return s, nil
}

// Jobs returns the number of scheduled jobs.
func (s *MaintenanceService) Jobs() int {
	return len(s.cron.Entries())
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info().Int("jobs", s.Jobs()).Msg("maintenance scheduler started")

	<-ctx.Done()

	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(s.stopTimeout):
		s.logger.Warn().Dur("timeout", s.stopTimeout).Msg("maintenance jobs still running at shutdown")
	}
	return ctx.Err()
}

func (s *MaintenanceService) String() string {
	return s.name
}

// SweepCache drops expired response cache entries.
func (s *MaintenanceService) SweepCache() {
	removed := s.cache.CleanupExpired()
	remaining := s.cache.Len()
	metrics.ResponseCacheEntries.Set(float64(remaining))

	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Int("remaining", remaining).Msg("response cache swept")
	}
}

// ProbeStore pings the counter store. Ping publishes counter_store_up.
func (s *MaintenanceService) ProbeStore() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := s.prober.Ping(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("counter store probe failed")
	}
}

// cronLog adapts zerolog to cron.Logger.
type cronLog struct {
	logger zerolog.Logger
}

func (l cronLog) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLog) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
