package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrCacheMiss = errors.New("route not found in cache")
)

// BadgerRouteCache route cache di badger. entry expire setelah ttl (0 = tidak pernah).
type BadgerRouteCache struct {
	db  *badger.DB
	ttl time.Duration
}

func NewBadgerRouteCache(db *badger.DB, ttl time.Duration) *BadgerRouteCache {
	return &BadgerRouteCache{db: db, ttl: ttl}
}

// OpenBadger buka badger db di path. path kosong = in-memory.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db %q: %w", path, err)
	}
	return db, nil
}

func (k *BadgerRouteCache) Get(ctx context.Context, from, to int64) (CachedRoute, error) {
	if err := ctx.Err(); err != nil {
		return CachedRoute{}, err
	}
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(routeKey(from, to))
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return CachedRoute{}, ErrCacheMiss
	}
	if err != nil {
		return CachedRoute{}, err
	}
	return decodeRoute(val)
}

func (k *BadgerRouteCache) Set(ctx context.Context, from, to int64, route CachedRoute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := encodeRoute(route)
	if err != nil {
		return err
	}
	return k.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(routeKey(from, to), val)
		if k.ttl > 0 {
			entry = entry.WithTTL(k.ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (k *BadgerRouteCache) Close() error {
	return k.db.Close()
}
