package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routeCache interface {
	Get(ctx context.Context, from, to int64) (CachedRoute, error)
	Set(ctx context.Context, from, to int64, route CachedRoute) error
	Close() error
}

func openCaches(t *testing.T) map[string]routeCache {
	t.Helper()
	bdb, err := OpenBadger("")
	require.NoError(t, err)

	pdb, err := OpenPebble(t.TempDir())
	require.NoError(t, err)

	return map[string]routeCache{
		"badger": NewBadgerRouteCache(bdb, time.Hour),
		"pebble": NewPebbleRouteCache(pdb),
	}
}

func TestRouteCache(t *testing.T) {
	for name, cache := range openCaches(t) {
		t.Run(name, func(t *testing.T) {
			defer cache.Close()
			ctx := context.Background()

			_, err := cache.Get(ctx, 1, 2)
			assert.ErrorIs(t, err, ErrCacheMiss)

			route := CachedRoute{Nodes: []int64{1, 5, 9, 2}, Dist: 3.25}
			require.NoError(t, cache.Set(ctx, 1, 2, route))

			got, err := cache.Get(ctx, 1, 2)
			require.NoError(t, err)
			assert.Equal(t, route.Nodes, got.Nodes)
			assert.Equal(t, route.Dist, got.Dist)

			// arah sebaliknya key nya beda
			_, err = cache.Get(ctx, 2, 1)
			assert.ErrorIs(t, err, ErrCacheMiss)

			// unreachable juga di cache
			require.NoError(t, cache.Set(ctx, 3, 4, CachedRoute{}))
			got, err = cache.Get(ctx, 3, 4)
			require.NoError(t, err)
			assert.Empty(t, got.Nodes)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err = cache.Get(cancelled, 1, 2)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestEncodeRoute(t *testing.T) {
	route := CachedRoute{Nodes: make([]int64, 0, 1000), Dist: 12.5}
	for i := 0; i < 1000; i++ {
		route.Nodes = append(route.Nodes, int64(1000000+i))
	}
	bb, err := encodeRoute(route)
	require.NoError(t, err)

	got, err := decodeRoute(bb)
	require.NoError(t, err)
	assert.Equal(t, route, got)

	_, err = decodeRoute([]byte("bukan zstd"))
	assert.Error(t, err)
}
