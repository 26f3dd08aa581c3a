// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package recommend

import (
	"strings"

	"github.com/tomtom215/animenotes/internal/recommend/text"
	"github.com/tomtom215/animenotes/internal/recommend/tfidf"
)

// Document section weights. Title is repeated most because it is the
// strongest similarity signal.
const (
	titleRepeat     = 3
	animeNameRepeat = 2
	tagsRepeat      = 2

	// MaxBodyTokens caps the body contribution so one long post cannot
	// dominate the term model.
	MaxBodyTokens = 200
)

// ComposeDocument builds the text document indexed for p.
func ComposeDocument(p *Post) string {
	var parts []string

	appendRepeated := func(tokens []string, n int) {
		if len(tokens) == 0 {
			return
		}
		joined := strings.Join(tokens, " ")
		for i := 0; i < n; i++ {
			parts = append(parts, joined)
		}
	}

	appendRepeated(text.Tokens(p.Title), titleRepeat)
	appendRepeated(text.Tokens(p.AnimeName), animeNameRepeat)
	appendRepeated(text.Tokens(strings.Join(p.Tags, " ")), tagsRepeat)

	body := p.Excerpt
	if body == "" {
		body = p.Content
	}
	bodyTokens := text.Tokens(body)
	if len(bodyTokens) > MaxBodyTokens {
		bodyTokens = bodyTokens[:MaxBodyTokens]
	}
	appendRepeated(bodyTokens, 1)

	return strings.Join(parts, " ")
}

// BuildModel composes one document per post and builds the term model.
// Vector i of the model belongs to pool[i].
func BuildModel(pool []Post) *tfidf.Model {
	docs := make([]string, len(pool))
	for i := range pool {
		docs[i] = ComposeDocument(&pool[i])
	}
	return tfidf.Build(docs)
}

// Score computes the hybrid score of candidate relative to target.
// No clamping is applied; with non-negative weights summing to 1 the
// result is in [0,1].
func Score(target, candidate *Post, targetVec, candidateVec tfidf.Vector, w Weights) (float64, Breakdown) {
	b := Breakdown{
		Content:    ContentSimilarity(targetVec, candidateVec),
		Tags:       TagSimilarity(target.Tags, candidate.Tags),
		Category:   CategorySimilarity(target.Category, candidate.Category),
		Anime:      AnimeSimilarity(target.AnimeName, target.SeasonNumber, candidate.AnimeName, candidate.SeasonNumber),
		Engagement: EngagementSimilarity(target.EngagementScore, candidate.EngagementScore),
	}

	score := w.Content*b.Content +
		w.Tags*b.Tags +
		w.Category*b.Category +
		w.Anime*b.Anime +
		w.Engagement*b.Engagement

	return score, b
}
