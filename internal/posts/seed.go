// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package posts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/animenotes/internal/models"
	"github.com/tomtom215/animenotes/internal/validation"
)

// LoadSeedFile reads a list of posts from a .yaml, .yml or .json file.
// Every post is validated; the first invalid one fails the load.
func LoadSeedFile(path string) ([]models.Post, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var posts []models.Post
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &posts)
	case ".json":
		err = json.Unmarshal(data, &posts)
	default:
		return nil, fmt.Errorf("seed file %s: unsupported extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	for i := range posts {
		if posts[i].Status == "" {
			posts[i].Status = models.StatusPublished
		}
		if verr := validation.ValidateStruct(&posts[i]); verr != nil {
			return nil, fmt.Errorf("seed post %d (%q): %w", i, posts[i].ID, verr)
		}
	}
	return posts, nil
}

// Seed writes posts into repo and returns how many were stored.
func Seed(ctx context.Context, repo Repository, posts []models.Post) (int, error) {
	for i := range posts {
		if err := repo.Put(ctx, &posts[i]); err != nil {
			return i, fmt.Errorf("seed post %q: %w", posts[i].ID, err)
		}
	}
	return len(posts), nil
}
