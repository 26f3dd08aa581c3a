// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package posts stores anime notes and serves them to the recommendation API.
package posts

import (
	"context"
	"errors"

	"github.com/tomtom215/animenotes/internal/models"
)

// ErrNotFound is returned when a post does not exist.
var ErrNotFound = errors.New("post not found")

// Repository is the post store the API reads from.
type Repository interface {
	// Get returns the post with id or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Post, error)

	// GetMany returns the posts for ids in the order given, skipping unknown
	// and repeated ids.
	GetMany(ctx context.Context, ids []string) ([]models.Post, error)

	// ListPublished returns every published post in a stable order.
	ListPublished(ctx context.Context) ([]models.Post, error)

	// Put creates or replaces a post.
	Put(ctx context.Context, post *models.Post) error
}
