package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

type PebbleRouteCache struct {
	db *pebble.DB
}

func NewPebbleRouteCache(db *pebble.DB) *PebbleRouteCache {
	return &PebbleRouteCache{db: db}
}

func OpenPebble(dir string) (*pebble.DB, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble db %q: %w", dir, err)
	}
	return db, nil
}

func (p *PebbleRouteCache) Get(ctx context.Context, from, to int64) (CachedRoute, error) {
	if err := ctx.Err(); err != nil {
		return CachedRoute{}, err
	}
	val, closer, err := p.db.Get(routeKey(from, to))
	if errors.Is(err, pebble.ErrNotFound) {
		return CachedRoute{}, ErrCacheMiss
	}
	if err != nil {
		return CachedRoute{}, err
	}
	defer closer.Close()

	// val cuma valid sampai closer di close, decodeRoute decompress ke buffer baru
	return decodeRoute(val)
}

func (p *PebbleRouteCache) Set(ctx context.Context, from, to int64, route CachedRoute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := encodeRoute(route)
	if err != nil {
		return err
	}
	return p.db.Set(routeKey(from, to), val, pebble.NoSync)
}

func (p *PebbleRouteCache) Close() error {
	return p.db.Close()
}
