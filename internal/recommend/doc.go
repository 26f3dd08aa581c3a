// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package recommend implements the content-based post recommendation engine.
//
// # Architecture
//
// A hybrid score blends five signals between a target post and a candidate:
//
//   - Content: cosine similarity of TF-IDF vectors (see package tfidf)
//   - Tags: Jaccard similarity of case-insensitive tag sets
//   - Category: exact category match
//   - Anime: graduated series/season match
//   - Engagement: candidate engagement normalized against the pair maximum
//
// Default weights are 0.40, 0.20, 0.15, 0.15 and 0.10. Callers override any
// subset per call through WeightOverrides.
//
// # Documents
//
// Each post becomes one document for the term model: title tokens three
// times, anime-name tokens twice, tag tokens twice, then at most the first
// 200 excerpt (or content) tokens. Tokens come from text.Preprocess.
//
// # Operations
//
//   - FindSimilar: posts similar to one target, filtered by a minimum score
//   - FromHistory: posts similar to an ordered list of seeds, with
//     recency-decayed seed weights and an optional diversity pass
//
// # Statelessness
//
// The term model is built from the candidate pool at the start of every call
// and discarded at the end. FromHistory builds it once and reuses it for all
// seeds. Nothing about a pool outlives the call that received it, which makes
// the engine safe for concurrent use without locks.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	opts := engine.DefaultSimilarOptions()
//	opts.Limit = 5
//	results, err := engine.FindSimilar(ctx, &target, pool, &opts)
package recommend
