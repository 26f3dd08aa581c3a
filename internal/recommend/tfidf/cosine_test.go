// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package tfidf

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{name: "both empty", a: Vector{}, b: Vector{}, want: 0},
		{name: "one empty", a: Vector{"x": 1}, b: Vector{}, want: 0},
		{name: "nil vector", a: nil, b: Vector{"x": 1}, want: 0},
		{name: "zero magnitude", a: Vector{"x": 0}, b: Vector{"x": 1}, want: 0},
		{name: "identical", a: Vector{"x": 1, "y": 2}, b: Vector{"x": 1, "y": 2}, want: 1},
		{name: "scaled", a: Vector{"x": 1, "y": 2}, b: Vector{"x": 3, "y": 6}, want: 1},
		{name: "disjoint", a: Vector{"x": 1}, b: Vector{"y": 1}, want: 0},
		{name: "partial overlap", a: Vector{"x": 1, "y": 1}, b: Vector{"x": 1}, want: 1 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosine_SymmetricAndBounded(t *testing.T) {
	m := Build([]string{
		"naruto naruto naruto ninja review",
		"naruto ninja ninja",
		"cooking show food",
		"food naruto",
	})

	for i := 0; i < m.Len(); i++ {
		for j := 0; j < m.Len(); j++ {
			ab := Cosine(m.VectorOf(i), m.VectorOf(j))
			ba := Cosine(m.VectorOf(j), m.VectorOf(i))
			if ab != ba {
				t.Errorf("Cosine(%d,%d) = %v, Cosine(%d,%d) = %v", i, j, ab, j, i, ba)
			}
			if ab < 0 || ab > 1+epsilon {
				t.Errorf("Cosine(%d,%d) = %v, want in [0,1]", i, j, ab)
			}
		}
	}
}

func TestMagnitude(t *testing.T) {
	v := Vector{"a": 3, "b": 4}
	if got := v.Magnitude(); !almostEqual(got, 5) {
		t.Errorf("Magnitude() = %v, want 5", got)
	}
	if got := (Vector{}).Magnitude(); got != 0 {
		t.Errorf("Magnitude(empty) = %v, want 0", got)
	}
}
