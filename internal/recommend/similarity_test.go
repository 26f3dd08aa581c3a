// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package recommend

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestTagSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{name: "both empty", a: nil, b: nil, want: 0},
		{name: "left empty", a: nil, b: []string{"action"}, want: 0},
		{name: "right empty", a: []string{"action"}, b: []string{}, want: 0},
		{name: "identical", a: []string{"action", "shounen"}, b: []string{"shounen", "action"}, want: 1},
		{name: "case insensitive", a: []string{"Action"}, b: []string{"action"}, want: 1},
		{name: "partial", a: []string{"action", "shounen"}, b: []string{"action", "mecha", "drama"}, want: 0.25},
		{name: "disjoint", a: []string{"action"}, b: []string{"slice-of-life"}, want: 0},
		{name: "duplicates collapse", a: []string{"action", "action"}, b: []string{"action"}, want: 1},
		{name: "blank tags ignored", a: []string{" ", ""}, b: []string{"action"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagSimilarity(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("TagSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := TagSimilarity(tt.b, tt.a); !almostEqual(got, tt.want) {
				t.Errorf("TagSimilarity(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestCategorySimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "equal", a: "reviews", b: "reviews", want: 1},
		{name: "normalized", a: " Reviews", b: "reviews ", want: 1},
		{name: "different", a: "reviews", b: "news", want: 0},
		{name: "left missing", a: "", b: "news", want: 0},
		{name: "both missing", a: "", b: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorySimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("CategorySimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAnimeSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		nameA   string
		seasonA *int
		nameB   string
		seasonB *int
		want    float64
	}{
		{name: "same season", nameA: "X", seasonA: Season(1), nameB: "X", seasonB: Season(1), want: 1.0},
		{name: "adjacent season", nameA: "X", seasonA: Season(1), nameB: "X", seasonB: Season(2), want: 0.7},
		{name: "adjacent season reversed", nameA: "X", seasonA: Season(3), nameB: "X", seasonB: Season(2), want: 0.7},
		{name: "distant season", nameA: "X", seasonA: Season(1), nameB: "X", seasonB: Season(4), want: 0.5},
		{name: "left season missing", nameA: "X", seasonA: nil, nameB: "X", seasonB: Season(1), want: 0.8},
		{name: "right season missing", nameA: "X", seasonA: Season(1), nameB: "X", seasonB: nil, want: 0.8},
		{name: "both seasons missing", nameA: "X", nameB: "X", want: 0.8},
		{name: "season zero is present", nameA: "X", seasonA: Season(0), nameB: "X", seasonB: Season(0), want: 1.0},
		{name: "case insensitive name", nameA: "Naruto", seasonA: Season(1), nameB: "naruto", seasonB: Season(1), want: 1.0},
		{name: "different anime", nameA: "X", seasonA: Season(1), nameB: "Y", seasonB: Season(1), want: 0},
		{name: "different anime no seasons", nameA: "X", nameB: "Y", want: 0},
		{name: "missing name", nameA: "", nameB: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnimeSimilarity(tt.nameA, tt.seasonA, tt.nameB, tt.seasonB)
			if got != tt.want {
				t.Errorf("AnimeSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngagementSimilarity(t *testing.T) {
	tests := []struct {
		name              string
		target, candidate float64
		want              float64
	}{
		{name: "both zero", target: 0, candidate: 0, want: 0},
		{name: "below floor", target: 0, candidate: 0.5, want: 0.5},
		{name: "candidate larger", target: 10, candidate: 50, want: 1},
		{name: "target larger", target: 10, candidate: 5, want: 0.5},
		{name: "equal", target: 7, candidate: 7, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EngagementSimilarity(tt.target, tt.candidate); !almostEqual(got, tt.want) {
				t.Errorf("EngagementSimilarity(%v, %v) = %v, want %v", tt.target, tt.candidate, got, tt.want)
			}
		})
	}
}
