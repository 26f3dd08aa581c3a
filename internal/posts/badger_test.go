// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/animenotes/internal/models"
)

func newTestRepo(t *testing.T) *BadgerRepository {
	t.Helper()
	r, err := OpenBadgerRepository("")
	if err != nil {
		t.Fatalf("OpenBadgerRepository: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func put(t *testing.T, r *BadgerRepository, posts ...models.Post) {
	t.Helper()
	for i := range posts {
		if err := r.Put(context.Background(), &posts[i]); err != nil {
			t.Fatalf("Put(%s): %v", posts[i].ID, err)
		}
	}
}

func TestBadgerRepository_GetAndPut(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	season := 2
	put(t, r, models.Post{
		ID:           "frieren-s2",
		Title:        "Frieren season two notes",
		AnimeName:    "Frieren",
		SeasonNumber: &season,
		Tags:         []string{"fantasy", "journey"},
		Status:       models.StatusPublished,
		Views:        12,
	})

	got, err := r.Get(ctx, "frieren-s2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Frieren season two notes" || got.SeasonNumber == nil || *got.SeasonNumber != 2 {
		t.Errorf("Get = %+v", got)
	}
	if !got.CreatedAt.Equal(fixed) || !got.UpdatedAt.Equal(fixed) {
		t.Errorf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, fixed)
	}

	if _, err := r.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
	if err := r.Put(ctx, &models.Post{}); err == nil {
		t.Error("Put without id should fail")
	}
}

func TestBadgerRepository_GetMany(t *testing.T) {
	r := newTestRepo(t)
	put(t, r,
		models.Post{ID: "a", Title: "A", Status: models.StatusPublished},
		models.Post{ID: "b", Title: "B", Status: models.StatusDraft},
		models.Post{ID: "c", Title: "C", Status: models.StatusPublished},
	)

	got, err := r.GetMany(context.Background(), []string{"c", "missing", "a", "c", "b"})
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	want := []string{"c", "a", "b"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}
}

func TestBadgerRepository_ListPublished(t *testing.T) {
	r := newTestRepo(t)
	put(t, r,
		models.Post{ID: "zeta", Title: "Z", Status: models.StatusPublished},
		models.Post{ID: "alpha", Title: "A", Status: models.StatusPublished},
		models.Post{ID: "draft", Title: "D", Status: models.StatusDraft},
		models.Post{ID: "mid", Title: "M", Status: models.StatusArchived},
	)

	got, err := r.ListPublished(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "alpha" || got[1].ID != "zeta" {
		t.Errorf("ListPublished = %v, want [alpha zeta]", got)
	}

	n, err := r.Count(context.Background())
	if err != nil || n != 4 {
		t.Errorf("Count = %d, %v; want 4", n, err)
	}
}

func TestBadgerRepository_CanceledContext(t *testing.T) {
	r := newTestRepo(t)
	put(t, r, models.Post{ID: "a", Title: "A", Status: models.StatusPublished})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Get(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get = %v, want context.Canceled", err)
	}
	if _, err := r.ListPublished(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ListPublished = %v, want context.Canceled", err)
	}
}

func TestNewBadgerRepository_SharesDatabase(t *testing.T) {
	owner := newTestRepo(t)
	shared := NewBadgerRepository(owner.DB())
	ctx := context.Background()

	put(t, shared, models.Post{ID: "p1", Title: "Frieren recap", Status: models.StatusPublished})

	got, err := owner.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("owner.Get: %v", err)
	}
	if got.Title != "Frieren recap" {
		t.Errorf("Title = %q", got.Title)
	}

	if err := shared.Close(); err != nil {
		t.Fatalf("shared.Close: %v", err)
	}
	if n, err := owner.Count(ctx); err != nil || n != 1 {
		t.Errorf("owner.Count after shared Close = %d, %v; want 1, nil", n, err)
	}
}
