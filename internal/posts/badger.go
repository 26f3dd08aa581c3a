// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/animenotes/internal/models"
)

const postKeyPrefix = "post:"

// BadgerRepository implements Repository on Badger. Posts are JSON documents
// under post:{id}; listing walks the prefix in key order.
type BadgerRepository struct {
	db     *badger.DB
	ownsDB bool
	now    func() time.Time
}

// OpenBadgerRepository opens a database at path, or an in-memory one when
// path is empty.
func OpenBadgerRepository(path string) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open post database: %w", err)
	}
	return &BadgerRepository{db: db, ownsDB: true, now: time.Now}, nil
}

// NewBadgerRepository uses an already open database. Close leaves it open.
func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db, now: time.Now}
}

// DB exposes the underlying database so other stores can share it.
func (r *BadgerRepository) DB() *badger.DB {
	return r.db
}

func postKey(id string) []byte {
	return []byte(postKeyPrefix + id)
}

// Get returns the post with id.
func (r *BadgerRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return readPost(txn, id, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetMany returns posts for ids in order, skipping unknown and repeated ids.
func (r *BadgerRepository) GetMany(ctx context.Context, ids []string) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Post, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			var post models.Post
			err := readPost(txn, id, &post)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			out = append(out, post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublished returns published posts ordered by key.
func (r *BadgerRepository) ListPublished(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(postKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &post)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			if post.IsPublished() {
				out = append(out, post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return out, nil
}

// Put stores post, setting CreatedAt on first write and UpdatedAt always.
func (r *BadgerRepository) Put(ctx context.Context, post *models.Post) error {
	if post == nil || post.ID == "" {
		return errors.New("post id is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := r.now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(postKey(post.ID), data); err != nil {
			return fmt.Errorf("set post: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored posts of any status.
func (r *BadgerRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(postKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return ctx.Err()
	})
	return count, err
}

// Close closes the database when the repository opened it.
func (r *BadgerRepository) Close() error {
	if !r.ownsDB {
		return nil
	}
	return r.db.Close()
}

func readPost(txn *badger.Txn, id string, post *models.Post) error {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get post %s: %w", id, err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, post); err != nil {
			return fmt.Errorf("decode post %s: %w", id, err)
		}
		return nil
	})
}

var _ Repository = (*BadgerRepository)(nil)
