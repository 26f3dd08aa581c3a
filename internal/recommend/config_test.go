// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package recommend

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Limit != 10 {
		t.Errorf("Limit = %d, want 10", cfg.Limit)
	}
	if cfg.MinScore != 0.1 {
		t.Errorf("MinScore = %v, want 0.1", cfg.MinScore)
	}
	if cfg.DiversityFactor != 0.3 {
		t.Errorf("DiversityFactor = %v, want 0.3", cfg.DiversityFactor)
	}
	if !almostEqual(cfg.Weights.Sum(), 1) {
		t.Errorf("Weights.Sum() = %v, want 1", cfg.Weights.Sum())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "negative weight", modify: func(c *Config) { c.Weights.Tags = -0.1 }, wantErr: true},
		{name: "zero limit", modify: func(c *Config) { c.Limit = 0 }, wantErr: true},
		{name: "min score above one", modify: func(c *Config) { c.MinScore = 1.5 }, wantErr: true},
		{name: "negative diversity", modify: func(c *Config) { c.DiversityFactor = -1 }, wantErr: true},
		{name: "unnormalized weights allowed", modify: func(c *Config) { c.Weights.Content = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeights_MergeEmptyKeepsBase(t *testing.T) {
	base := DefaultWeights()
	if got := base.Merge(WeightOverrides{}); got != base {
		t.Errorf("Merge(empty) = %+v, want %+v", got, base)
	}
}
