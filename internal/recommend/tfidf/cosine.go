// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package tfidf

import (
	"math"
	"sort"
)

// sortedTerms returns the keys of v in sorted order. Sums below are
// accumulated in this order so repeated calls produce bit-identical results
// regardless of map iteration order.
func (v Vector) sortedTerms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Magnitude returns the Euclidean norm of v.
func (v Vector) Magnitude() float64 {
	var sum float64
	for _, term := range v.sortedTerms() {
		w := v[term]
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of a and b over their shared terms.
func Dot(a, b Vector) float64 {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	var dot float64
	for _, term := range small.sortedTerms() {
		if ow, ok := large[term]; ok {
			dot += small[term] * ow
		}
	}
	return dot
}

// Cosine returns the cosine similarity of a and b.
// It returns 0 when either vector is empty or has zero magnitude.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	magA, magB := a.Magnitude(), b.Magnitude()
	if magA == 0 || magB == 0 {
		return 0
	}

	return Dot(a, b) / (magA * magB)
}
