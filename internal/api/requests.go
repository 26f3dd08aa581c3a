// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/animenotes/internal/validation"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

// SimilarRequest holds the validated query of the similar-posts endpoint.
type SimilarRequest struct {
	PostID           string  `json:"postId" validate:"required,postid"`
	Limit            int     `json:"limit" validate:"min=1"`
	MinScore         float64 `json:"minScore" validate:"min=0,max=1"`
	IncludeBreakdown bool    `json:"includeBreakdown"`
}

// PersonalizedRequest is the body of the personalized endpoint.
// PostIDs are ordered most relevant first.
type PersonalizedRequest struct {
	PostIDs         []string `json:"postIds" validate:"required,min=1,max=100,dive,postid"`
	Limit           *int     `json:"limit,omitempty" validate:"omitempty,min=1"`
	DiversityFactor *float64 `json:"diversityFactor,omitempty" validate:"omitempty,min=0,max=1"`
}

// ViewRequest is the body of the view endpoint.
type ViewRequest struct {
	SessionID string `json:"sessionId" validate:"required,max=128"`
}

// paramError reports a query parameter that could not be parsed.
type paramError struct {
	param string
	msg   string
}

func (e *paramError) Error() string { return e.msg }

// parseSimilarQuery reads limit, minScore and includeBreakdown, applying the
// handler defaults for absent values.
func parseSimilarQuery(r *http.Request, defaultLimit int, defaultMinScore float64) (limit int, minScore float64, breakdown bool, err error) {
	q := r.URL.Query()
	limit, minScore = defaultLimit, defaultMinScore

	if s := q.Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			return 0, 0, false, &paramError{"limit", "limit must be an integer"}
		}
	}
	if s := q.Get("minScore"); s != "" {
		if minScore, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, 0, false, &paramError{"minScore", "minScore must be a number"}
		}
	}
	if s := q.Get("includeBreakdown"); s != "" {
		if breakdown, err = strconv.ParseBool(s); err != nil {
			return 0, 0, false, &paramError{"includeBreakdown", "includeBreakdown must be true or false"}
		}
	}
	return limit, minScore, breakdown, nil
}

// checkMaxLimit rejects limits above the configured ceiling.
func checkMaxLimit(limit, maxLimit int) error {
	if limit > maxLimit {
		return &paramError{"limit", fmt.Sprintf("limit must be at most %d", maxLimit)}
	}
	return nil
}

// decodeBody reads a JSON body into dst and validates it. An empty body
// decodes as the zero value so required-field validation reports it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) (ok bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, msgInvalidBody, err)
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		respondValidationError(w, r, verr)
		return false
	}
	return true
}

// validatePostID checks a path parameter against the post id format.
func validatePostID(id string) error {
	if err := validation.GetValidator().Var(id, "required,postid"); err != nil {
		return &paramError{"id", "invalid post id"}
	}
	return nil
}
