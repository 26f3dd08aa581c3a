// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

package engagement

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// badgerNamespace keeps counter keys apart from other data sharing the DB.
const badgerNamespace = "engagement/"

// maxConflictRetries bounds retries of a transaction that lost a write race.
const maxConflictRetries = 100

// BadgerStore implements Store on an embedded Badger database. Markers are
// entries with a TTL; counters are 8-byte big-endian integers updated in
// serializable transactions.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerStore opens a database at path. An empty path opens an
// in-memory database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger counter store: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore uses an already open database. Close leaves it open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func nsKey(key string) []byte {
	return []byte(badgerNamespace + key)
}

// update runs fn in a read-write transaction, retrying on conflict.
func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *BadgerStore) SetMarker(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	var created bool
	err := s.update(ctx, func(txn *badger.Txn) error {
		created = false
		k := nsKey(key)
		_, err := txn.Get(k)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		entry := badger.NewEntry(k, []byte{1})
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("badger set marker %s: %w", key, err)
	}
	return created, nil
}

func (s *BadgerStore) DeleteMarker(ctx context.Context, key string) (bool, error) {
	var existed bool
	err := s.update(ctx, func(txn *badger.Txn) error {
		existed = false
		k := nsKey(key)
		_, err := txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		existed = true
		return txn.Delete(k)
	})
	if err != nil {
		return false, fmt.Errorf("badger delete marker %s: %w", key, err)
	}
	return existed, nil
}

func (s *BadgerStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(nsKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("badger exists %s: %w", key, err)
	}
	return found, nil
}

func (s *BadgerStore) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	var result int64
	err := s.update(ctx, func(txn *badger.Txn) error {
		k := nsKey(key)
		current, err := readCounter(txn, k)
		if err != nil {
			return err
		}
		result = current + delta
		return txn.Set(k, encodeCounter(result))
	})
	if err != nil {
		return 0, fmt.Errorf("badger incrby %s: %w", key, err)
	}
	return result, nil
}

func (s *BadgerStore) Get(ctx context.Context, key string) (int64, error) {
	vals, err := s.MGet(ctx, []string{key})
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

func (s *BadgerStore) MGet(ctx context.Context, keys []string) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]int64, len(keys))
	err := s.db.View(func(txn *badger.Txn) error {
		for i, key := range keys {
			v, err := readCounter(txn, nsKey(key))
			if err != nil {
				return err
			}
			out[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger mget: %w", err)
	}
	return out, nil
}

func (s *BadgerStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("badger counter store closed")
	}
	return nil
}

func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// readCounter returns 0 for absent keys and for values that are not 8 bytes.
func readCounter(txn *badger.Txn, k []byte) (int64, error) {
	item, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var v int64
	err = item.Value(func(val []byte) error {
		if len(val) == 8 {
			v = int64(binary.BigEndian.Uint64(val)) //nolint:gosec // round-trips encodeCounter
		}
		return nil
	})
	return v, err
}

func encodeCounter(v int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v)) //nolint:gosec // two's complement round trip
	return buf
}

var _ Store = (*BadgerStore)(nil)
