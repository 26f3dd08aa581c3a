// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package recommend

// Penalty scales applied per unit of diversity factor.
const (
	categoryPenaltyScale = 0.5
	animePenaltyScale    = 0.7
)

// Diversify penalizes repeated categories and anime series.
//
// Items are walked in their given order. An item whose category was already
// seen has its score multiplied by (1 - factor*0.5); an item whose anime was
// already seen is multiplied by (1 - factor*0.7). Both penalties compound.
// The walk stops after limit items and the survivors are re-sorted by their
// penalized score, so an item can drop below one that ranked after it.
//
// Posts without a category or anime name are never penalized on that axis.
// The input slice is not modified.
func Diversify(items []ScoredPost, limit int, factor float64) []ScoredPost {
	if limit <= 0 {
		return []ScoredPost{}
	}

	categoryPenalty := 1 - factor*categoryPenaltyScale
	animePenalty := 1 - factor*animePenaltyScale

	seenCategories := make(map[string]struct{})
	seenAnime := make(map[string]struct{})

	out := make([]ScoredPost, 0, min(limit, len(items)))
	for _, item := range items {
		if len(out) >= limit {
			break
		}

		category := normalize(item.Post.Category)
		anime := normalize(item.Post.AnimeName)

		if category != "" {
			if _, seen := seenCategories[category]; seen {
				item.Score *= categoryPenalty
			}
			seenCategories[category] = struct{}{}
		}
		if anime != "" {
			if _, seen := seenAnime[anime]; seen {
				item.Score *= animePenalty
			}
			seenAnime[anime] = struct{}{}
		}

		out = append(out, item)
	}

	sortByScore(out)
	return out
}
