// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package recommend

import (
	"strings"

	"github.com/tomtom215/animenotes/internal/recommend/tfidf"
)

// Graduated anime similarity values.
const (
	animeSameSeason     = 1.0
	animeSeasonUnknown  = 0.8
	animeAdjacentSeason = 0.7
	animeDistantSeason  = 0.5
)

// ContentSimilarity is the cosine similarity of two TF-IDF vectors.
func ContentSimilarity(a, b tfidf.Vector) float64 {
	return tfidf.Cosine(a, b)
}

// TagSimilarity computes Jaccard similarity over case-insensitive tag sets.
// Returns 0 if either set is empty.
func TagSimilarity(a, b []string) float64 {
	setA := tagSet(a)
	setB := tagSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tag := range setA {
		if _, ok := setB[tag]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = normalize(t)
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// CategorySimilarity returns 1 when both categories are present and equal.
func CategorySimilarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return 0
}

// AnimeSimilarity scores two posts by series and season:
//
//	different series            0
//	same series, same season    1.0
//	season unknown on a side    0.8
//	seasons one apart           0.7
//	seasons further apart       0.5
func AnimeSimilarity(nameA string, seasonA *int, nameB string, seasonB *int) float64 {
	a, b := normalize(nameA), normalize(nameB)
	if a == "" || b == "" || a != b {
		return 0
	}

	if seasonA == nil || seasonB == nil {
		return animeSeasonUnknown
	}

	diff := *seasonA - *seasonB
	if diff < 0 {
		diff = -diff
	}

	switch {
	case diff == 0:
		return animeSameSeason
	case diff == 1:
		return animeAdjacentSeason
	default:
		return animeDistantSeason
	}
}

// EngagementSimilarity normalizes the candidate's engagement against the
// larger of the pair, with a floor of 1 so two unengaged posts score 0.
func EngagementSimilarity(target, candidate float64) float64 {
	denom := max(target, candidate, 1)
	return candidate / denom
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
