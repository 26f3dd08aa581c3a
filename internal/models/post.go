// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package models holds the durable records shared across packages.
package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// Engagement weights for posts without a stored engagement score.
const (
	viewWeight     = 0.3
	likeWeight     = 0.5
	bookmarkWeight = 0.2
)

// Post is an anime note as stored by the post repository.
type Post struct {
	ID           string     `json:"id" yaml:"id" validate:"required,postid"`
	Title        string     `json:"title" yaml:"title" validate:"required"`
	Slug         string     `json:"slug,omitempty" yaml:"slug,omitempty"`
	AnimeName    string     `json:"animeName,omitempty" yaml:"animeName,omitempty"`
	SeasonNumber *int       `json:"seasonNumber,omitempty" yaml:"seasonNumber,omitempty"`
	Category     string     `json:"category,omitempty" yaml:"category,omitempty"`
	Tags         []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Excerpt      string     `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Content      string     `json:"content,omitempty" yaml:"content,omitempty"`
	Status       PostStatus `json:"status" yaml:"status" validate:"oneof=draft published archived"`

	// Durable engagement snapshot. Live counters take precedence when nonzero.
	Views           int64    `json:"views" yaml:"views"`
	Likes           int64    `json:"likes" yaml:"likes"`
	Bookmarks       int64    `json:"bookmarks" yaml:"bookmarks"`
	EngagementScore *float64 `json:"engagementScore,omitempty" yaml:"engagementScore,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// IsPublished reports whether the post is visible to readers.
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// Engagement returns the stored engagement score, or a weighted sum of the
// given views and likes and the stored bookmarks when none is stored.
func (p *Post) Engagement(views, likes int64) float64 {
	if p.EngagementScore != nil {
		return *p.EngagementScore
	}
	return viewWeight*float64(views) + likeWeight*float64(likes) + bookmarkWeight*float64(p.Bookmarks)
}
