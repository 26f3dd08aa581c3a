// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"context"
	"fmt"

	"github.com/tomtom215/animenotes/internal/models"
	"github.com/tomtom215/animenotes/internal/recommend"
)

// buildPool loads every published post and attaches its engagement score.
// Live counters win over the stored snapshot unless they read zero, which
// also covers a disabled or unreachable counter store.
func (h *Handler) buildPool(ctx context.Context) ([]recommend.Post, error) {
	published, err := h.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}

	ids := make([]string, len(published))
	for i := range published {
		ids[i] = published[i].ID
	}
	views := h.counters.GetViewCounts(ctx, ids)
	likes := h.counters.GetLikesCounts(ctx, ids)

	pool := make([]recommend.Post, len(published))
	for i := range published {
		p := &published[i]
		pool[i] = toEnginePost(p, liveOr(views[p.ID], p.Views), liveOr(likes[p.ID], p.Likes))
	}
	return pool, nil
}

func liveOr(live, stored int64) int64 {
	if live > 0 {
		return live
	}
	return stored
}

func toEnginePost(p *models.Post, views, likes int64) recommend.Post {
	return recommend.Post{
		ID:              p.ID,
		Title:           p.Title,
		AnimeName:       p.AnimeName,
		Tags:            p.Tags,
		Category:        p.Category,
		SeasonNumber:    p.SeasonNumber,
		Excerpt:         p.Excerpt,
		Content:         p.Content,
		EngagementScore: p.Engagement(views, likes),
	}
}

// findInPool returns the pool entry with id, or nil.
func findInPool(pool []recommend.Post, id string) *recommend.Post {
	for i := range pool {
		if pool[i].ID == id {
			return &pool[i]
		}
	}
	return nil
}
