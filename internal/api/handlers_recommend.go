// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/animenotes/internal/logging"
	"github.com/tomtom215/animenotes/internal/metrics"
	"github.com/tomtom215/animenotes/internal/posts"
	"github.com/tomtom215/animenotes/internal/recommend"
	"github.com/tomtom215/animenotes/internal/validation"
)

// RecommendationResponse is the body of both recommendation endpoints.
type RecommendationResponse struct {
	Success bool         `json:"success"`
	Cached  bool         `json:"cached"`
	Count   int          `json:"count"`
	Data    []PostResult `json:"data"`
}

// PostResult is a recommended post. Exactly one of SimilarityScore and
// RecommendationScore is set.
type PostResult struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	AnimeName           string               `json:"animeName,omitempty"`
	SeasonNumber        *int                 `json:"seasonNumber,omitempty"`
	Category            string               `json:"category,omitempty"`
	Tags                []string             `json:"tags"`
	Excerpt             string               `json:"excerpt,omitempty"`
	EngagementScore     float64              `json:"engagementScore"`
	SimilarityScore     *float64             `json:"similarityScore,omitempty"`
	RecommendationScore *float64             `json:"recommendationScore,omitempty"`
	ScoreBreakdown      *recommend.Breakdown `json:"scoreBreakdown,omitempty"`
}

func newPostResult(sp *recommend.ScoredPost) PostResult {
	tags := sp.Post.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostResult{
		ID:              sp.Post.ID,
		Title:           sp.Post.Title,
		AnimeName:       sp.Post.AnimeName,
		SeasonNumber:    sp.Post.SeasonNumber,
		Category:        sp.Post.Category,
		Tags:            tags,
		Excerpt:         sp.Post.Excerpt,
		EngagementScore: sp.Post.EngagementScore,
	}
}

// similarCacheKey formats minScore in its shortest decimal form so 0.1 and
// 0.10 share an entry.
func similarCacheKey(postID string, limit int, minScore float64) string {
	return "similar:" + postID + ":" + strconv.Itoa(limit) + ":" + strconv.FormatFloat(minScore, 'f', -1, 64)
}

// personalizedCacheKey sorts the ids so the same history in any order shares
// an entry. A non-default diversity factor is appended since it changes the
// ranking.
func personalizedCacheKey(ids []string, limit int, diversity, defaultDiversity float64) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	key := "personalized:" + strings.Join(sorted, ",") + ":" + strconv.Itoa(limit)
	if diversity != defaultDiversity {
		key += ":" + strconv.FormatFloat(diversity, 'f', -1, 64)
	}
	return key
}

// GetSimilar handles GET /api/v1/recommendations/similar/{postId}.
func (h *Handler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	limit, minScore, includeBreakdown, err := parseSimilarQuery(r, h.opts.DefaultLimit, h.opts.DefaultMinScore)
	if err != nil {
		h.respondParamError(w, r, err)
		return
	}

	req := SimilarRequest{
		PostID:           chi.URLParam(r, "postId"),
		Limit:            limit,
		MinScore:         minScore,
		IncludeBreakdown: includeBreakdown,
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if err := checkMaxLimit(req.Limit, h.opts.MaxLimit); err != nil {
		h.respondParamError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	target, err := h.repo.Get(ctx, req.PostID)
	if errors.Is(err, posts.ErrNotFound) || (err == nil && !target.IsPublished()) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, msgPostNotFound, nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, msgInternal, err)
		return
	}

	key := similarCacheKey(req.PostID, req.Limit, req.MinScore)
	results, cached := h.lookup(key, recommend.ModeSimilar)
	if !cached {
		start := time.Now()
		pool, err := h.buildPool(ctx)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, msgInternal, err)
			return
		}

		enginePost := findInPool(pool, target.ID)
		if enginePost == nil {
			// Unpublished between Get and ListPublished.
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, msgPostNotFound, nil)
			return
		}

		opts := h.engine.DefaultSimilarOptions()
		opts.Limit = req.Limit
		opts.MinScore = req.MinScore
		results, err = h.engine.FindSimilar(ctx, enginePost, pool, &opts)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, msgInternal, err)
			return
		}
		metrics.RecordRecommendation(recommend.ModeSimilar.String(), time.Since(start), len(results))
		h.store(key, results)
	}

	data := make([]PostResult, len(results))
	for i := range results {
		data[i] = newPostResult(&results[i])
		score := results[i].Score
		data[i].SimilarityScore = &score
		if req.IncludeBreakdown {
			data[i].ScoreBreakdown = results[i].Breakdown
		}
	}

	logging.Ctx(r.Context()).Debug().
		Str("post_id", req.PostID).
		Bool("cached", cached).
		Int("count", len(data)).
		Msg("similar posts served")

	respondJSON(w, http.StatusOK, &RecommendationResponse{
		Success: true,
		Cached:  cached,
		Count:   len(data),
		Data:    data,
	})
}

// GetPersonalized handles POST /api/v1/recommendations/personalized.
func (h *Handler) GetPersonalized(w http.ResponseWriter, r *http.Request) {
	var req PersonalizedRequest
	if !decodeBody(w, r, &req) {
		return
	}

	limit := h.opts.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if err := checkMaxLimit(limit, h.opts.MaxLimit); err != nil {
		h.respondParamError(w, r, err)
		return
	}
	diversity := h.opts.DefaultDiversityFactor
	if req.DiversityFactor != nil {
		diversity = *req.DiversityFactor
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	key := personalizedCacheKey(req.PostIDs, limit, diversity, h.opts.DefaultDiversityFactor)
	results, cached := h.lookup(key, recommend.ModeHistory)
	if !cached {
		start := time.Now()
		found, err := h.repo.GetMany(ctx, req.PostIDs)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, msgInternal, err)
			return
		}
		pool, err := h.buildPool(ctx)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, msgInternal, err)
			return
		}

		seeds := make([]recommend.Post, 0, len(found))
		for i := range found {
			if !found[i].IsPublished() {
				continue
			}
			if p := findInPool(pool, found[i].ID); p != nil {
				seeds = append(seeds, *p)
			}
		}
		if len(seeds) == 0 {
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, msgNoSeedPosts, nil)
			return
		}

		opts := h.engine.DefaultHistoryOptions()
		opts.Limit = limit
		opts.DiversityFactor = diversity
		results, err = h.engine.FromHistory(ctx, seeds, pool, &opts)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, msgInternal, err)
			return
		}
		metrics.RecordRecommendation(recommend.ModeHistory.String(), time.Since(start), len(results))
		h.store(key, results)
	}

	data := make([]PostResult, len(results))
	for i := range results {
		data[i] = newPostResult(&results[i])
		score := results[i].Score
		data[i].RecommendationScore = &score
	}

	logging.Ctx(r.Context()).Debug().
		Int("seeds", len(req.PostIDs)).
		Bool("cached", cached).
		Int("count", len(data)).
		Msg("personalized posts served")

	respondJSON(w, http.StatusOK, &RecommendationResponse{
		Success: true,
		Cached:  cached,
		Count:   len(data),
		Data:    data,
	})
}

func (h *Handler) lookup(key string, mode recommend.Mode) ([]recommend.ScoredPost, bool) {
	results, ok := h.cache.Get(key)
	metrics.RecordCacheLookup(mode.String(), ok)
	return results, ok
}

func (h *Handler) store(key string, results []recommend.ScoredPost) {
	h.cache.Set(key, results)
	metrics.ResponseCacheEntries.Set(float64(h.cache.Stats().Size))
}

func (h *Handler) respondParamError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *paramError
	if errors.As(err, &pe) {
		respondBadParam(w, r, pe.param, pe.msg)
		return
	}
	respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
}
