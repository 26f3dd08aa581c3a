// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package recommend

// Post is a candidate record as seen by the engine.
// It is read-only input; the engine never mutates or stores posts.
type Post struct {
	// ID uniquely identifies the post within a candidate pool. Required.
	ID string `json:"id"`

	// Title is the post headline. Strongest text signal.
	Title string `json:"title"`

	// AnimeName is the series the post is about.
	AnimeName string `json:"animeName"`

	// Tags are lowercase labels. Order is irrelevant.
	Tags []string `json:"tags,omitempty"`

	// Category is an opaque category identifier. Empty means missing.
	Category string `json:"category,omitempty"`

	// SeasonNumber is the series season, nil when unknown.
	SeasonNumber *int `json:"seasonNumber,omitempty"`

	// Excerpt is the short summary. Preferred over Content when present.
	Excerpt string `json:"excerpt,omitempty"`

	// Content is the long-form body.
	Content string `json:"content,omitempty"`

	// EngagementScore is an externally computed popularity signal.
	EngagementScore float64 `json:"engagementScore"`
}

// Season returns a pointer to n for use as Post.SeasonNumber.
func Season(n int) *int {
	return &n
}

// Breakdown holds the pairwise sub-scores behind a hybrid score.
type Breakdown struct {
	// Content is the cosine similarity of the two TF-IDF vectors.
	Content float64 `json:"content"`

	// Tags is the Jaccard similarity of the tag sets.
	Tags float64 `json:"tags"`

	// Category is 1 when both posts share a category, else 0.
	Category float64 `json:"category"`

	// Anime is the graduated series/season similarity.
	Anime float64 `json:"anime"`

	// Engagement is the pair-normalized engagement signal.
	Engagement float64 `json:"-"`
}

// ScoredPost is a recommendation result.
type ScoredPost struct {
	Post Post `json:"post"`

	// Score is the hybrid score for FindSimilar and the accumulated
	// (possibly diversity-penalized) score for FromHistory.
	Score float64 `json:"score"`

	// Breakdown is set by FindSimilar only.
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}

// Mode identifies which engine operation produced a result.
type Mode int

const (
	// ModeSimilar is a single-target "posts like this one" query.
	ModeSimilar Mode = iota
	// ModeHistory is a multi-seed personalized query.
	ModeHistory
)

// String returns the metric/log label for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSimilar:
		return "similar"
	case ModeHistory:
		return "personalized"
	default:
		return "unknown"
	}
}

// SimilarOptions controls FindSimilar.
// Obtain defaults from (*Engine).DefaultSimilarOptions; values are used as given.
type SimilarOptions struct {
	// Limit caps the result length. A limit of 0 or less yields no results.
	Limit int

	// MinScore drops candidates scoring below it.
	MinScore float64

	// ExcludeIDs are never returned.
	ExcludeIDs []string

	// Weights overrides individual default weights.
	Weights WeightOverrides
}

// HistoryOptions controls FromHistory.
type HistoryOptions struct {
	// Limit caps the result length.
	Limit int

	// DiversityFactor in [0,1] scales the repeated category/anime penalty.
	// Zero disables diversification.
	DiversityFactor float64

	// Weights overrides individual default weights for every seed.
	Weights WeightOverrides
}
