// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/animenotes/internal/auth"
	"github.com/tomtom215/animenotes/internal/models"
	"github.com/tomtom215/animenotes/internal/posts"
)

// ViewResponse is returned by the view endpoint.
type ViewResponse struct {
	Success bool  `json:"success"`
	Counted bool  `json:"counted"`
	Views   int64 `json:"views"`
}

// LikeResponse is returned by the like endpoint.
type LikeResponse struct {
	Success    bool  `json:"success"`
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

// EngagementData is the payload of the engagement endpoint. HasLiked is only
// present for authenticated callers.
type EngagementData struct {
	PostID   string `json:"postId"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	HasLiked *bool  `json:"hasLiked,omitempty"`
}

// EngagementResponse wraps EngagementData.
type EngagementResponse struct {
	Success bool           `json:"success"`
	Data    EngagementData `json:"data"`
}

// RecordView handles POST /api/v1/posts/{id}/view.
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	post, ok := h.publishedPost(w, r)
	if !ok {
		return
	}

	var req ViewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	counted := h.counters.IncrementView(r.Context(), post.ID, req.SessionID)
	views := liveOr(h.counters.GetViewCount(r.Context(), post.ID), post.Views)

	respondJSON(w, http.StatusOK, &ViewResponse{
		Success: true,
		Counted: counted,
		Views:   views,
	})
}

// ToggleLike handles POST /api/v1/posts/{id}/like. The route requires a
// verified token; the user is the token subject.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		unauthorized(w, r, nil)
		return
	}

	post, ok := h.publishedPost(w, r)
	if !ok {
		return
	}

	result := h.counters.ToggleLike(r.Context(), post.ID, userID)

	respondJSON(w, http.StatusOK, &LikeResponse{
		Success:    true,
		Liked:      result.Liked,
		LikesCount: result.LikesCount,
	})
}

// GetEngagement handles GET /api/v1/posts/{id}/engagement.
func (h *Handler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	post, ok := h.publishedPost(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	data := EngagementData{
		PostID: post.ID,
		Views:  liveOr(h.counters.GetViewCount(ctx, post.ID), post.Views),
		Likes:  liveOr(h.counters.GetLikesCount(ctx, post.ID), post.Likes),
	}
	if userID := auth.UserIDFromContext(ctx); userID != "" {
		liked := h.counters.HasLiked(ctx, post.ID, userID)
		data.HasLiked = &liked
	}

	respondJSON(w, http.StatusOK, &EngagementResponse{Success: true, Data: data})
}

// publishedPost resolves the {id} path parameter, writing the error response
// itself when the id is malformed or names no published post.
func (h *Handler) publishedPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id := chi.URLParam(r, "id")
	if err := validatePostID(id); err != nil {
		h.respondParamError(w, r, err)
		return nil, false
	}

	post, err := h.repo.Get(r.Context(), id)
	switch {
	case errors.Is(err, posts.ErrNotFound), err == nil && !post.IsPublished():
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, msgPostNotFound, nil)
		return nil, false
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, msgInternal, err)
		return nil, false
	}
	return post, true
}
