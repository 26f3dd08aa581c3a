// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package recommend

import (
	"fmt"
)

// Default option values applied by DefaultConfig.
const (
	DefaultLimit           = 10
	DefaultMinScore        = 0.1
	DefaultDiversityFactor = 0.3
)

// Config contains the engine defaults. The engine holds no other state.
type Config struct {
	// Weights are the base weights each call's overrides are merged onto.
	Weights Weights `json:"weights"`

	// Limit is the default result length.
	Limit int `json:"limit"`

	// MinScore is the default FindSimilar score floor. FromHistory uses it
	// for its per-seed passes.
	MinScore float64 `json:"min_score"`

	// DiversityFactor is the default FromHistory diversity factor.
	DiversityFactor float64 `json:"diversity_factor"`
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		Weights:         DefaultWeights(),
		Limit:           DefaultLimit,
		MinScore:        DefaultMinScore,
		DiversityFactor: DefaultDiversityFactor,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("min_score must be in [0,1], got %v", c.MinScore)
	}
	if c.DiversityFactor < 0 || c.DiversityFactor > 1 {
		return fmt.Errorf("diversity_factor must be in [0,1], got %v", c.DiversityFactor)
	}
	return nil
}

// Weights defines the contribution of each sub-score to the hybrid score.
// Weights are used as given; they are not normalized.
type Weights struct {
	Content    float64 `json:"content" koanf:"content"`
	Tags       float64 `json:"tags" koanf:"tags"`
	Category   float64 `json:"category" koanf:"category"`
	Anime      float64 `json:"anime" koanf:"anime"`
	Engagement float64 `json:"engagement" koanf:"engagement"`
}

// DefaultWeights returns weights summing to 1.0 with title-heavy content
// similarity as the dominant signal.
func DefaultWeights() Weights {
	return Weights{
		Content:    0.40,
		Tags:       0.20,
		Category:   0.15,
		Anime:      0.15,
		Engagement: 0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Content + w.Tags + w.Category + w.Anime + w.Engagement
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	for name, v := range w.ToMap() {
		if v < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// ToMap converts weights to a map keyed by sub-score name.
func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		"content":    w.Content,
		"tags":       w.Tags,
		"category":   w.Category,
		"anime":      w.Anime,
		"engagement": w.Engagement,
	}
}

// WeightOverrides replaces individual weights. Nil fields keep the base value.
type WeightOverrides struct {
	Content    *float64 `json:"content,omitempty"`
	Tags       *float64 `json:"tags,omitempty"`
	Category   *float64 `json:"category,omitempty"`
	Anime      *float64 `json:"anime,omitempty"`
	Engagement *float64 `json:"engagement,omitempty"`
}

// Merge returns w with every non-nil override applied.
func (w Weights) Merge(o WeightOverrides) Weights {
	if o.Content != nil {
		w.Content = *o.Content
	}
	if o.Tags != nil {
		w.Tags = *o.Tags
	}
	if o.Category != nil {
		w.Category = *o.Category
	}
	if o.Anime != nil {
		w.Anime = *o.Anime
	}
	if o.Engagement != nil {
		w.Engagement = *o.Engagement
	}
	return w
}
