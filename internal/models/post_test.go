// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package models

import (
	"math"
	"testing"
)

func TestPost_Engagement(t *testing.T) {
	stored := 42.5

	tests := []struct {
		name  string
		post  Post
		views int64
		likes int64
		want  float64
	}{
		{"stored score wins", Post{EngagementScore: &stored, Bookmarks: 100}, 10, 10, 42.5},
		{"weighted sum", Post{Bookmarks: 5}, 100, 20, 30 + 10 + 1},
		{"zero", Post{}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.Engagement(tt.views, tt.likes); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Engagement() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPost_IsPublished(t *testing.T) {
	for status, want := range map[PostStatus]bool{
		StatusPublished: true,
		StatusDraft:     false,
		StatusArchived:  false,
		"":              false,
	} {
		p := Post{Status: status}
		if got := p.IsPublished(); got != want {
			t.Errorf("IsPublished(%q) = %v, want %v", status, got, want)
		}
	}
}
