package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/kv"
	"github.com/lintang-b-s/osmroute/pkg/server"
	"github.com/lintang-b-s/osmroute/pkg/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

/*
road network kecil (lon, lat):

	3 (-7.560) ---Jalan Utara--- 4
	|                            |
	Jalan Barat              Jalan Timur
	|                            |
	1 (-7.570) ---Jalan Selatan-- 2        5 ---Jalan Pulau--- 6   (komponen terpisah)
*/
func buildTestGraph(t *testing.T) *datastructure.Graph {
	t.Helper()
	b := datastructure.NewGraphBuilder(nil)
	require.NoError(t, b.AddNode(1, 110.8200, -7.5700, "Perempatan Selatan"))
	require.NoError(t, b.AddNode(2, 110.8300, -7.5700, ""))
	require.NoError(t, b.AddNode(3, 110.8200, -7.5600, ""))
	require.NoError(t, b.AddNode(4, 110.8300, -7.5600, "Pasar Utara"))
	require.NoError(t, b.AddNode(5, 110.8500, -7.5700, ""))
	require.NoError(t, b.AddNode(6, 110.8600, -7.5700, "Pasar Pulau"))

	ways := []datastructure.WayEvent{
		{ID: 1, NodeIDs: []int64{1, 2}, Tags: map[string]string{"highway": "residential", "name": "Jalan Selatan"}},
		{ID: 2, NodeIDs: []int64{2, 4}, Tags: map[string]string{"highway": "residential", "name": "Jalan Timur"}},
		{ID: 3, NodeIDs: []int64{3, 4}, Tags: map[string]string{"highway": "residential", "name": "Jalan Utara"}},
		{ID: 4, NodeIDs: []int64{1, 3}, Tags: map[string]string{"highway": "residential", "name": "Jalan Barat"}},
		{ID: 5, NodeIDs: []int64{5, 6}, Tags: map[string]string{"highway": "residential", "name": "Jalan Pulau"}},
	}
	for _, w := range ways {
		require.NoError(t, b.AddWay(w))
	}
	g, _ := b.Finish()
	return g
}

func newTestService(t *testing.T, options ...Option) (*NavigationService, *datastructure.Graph) {
	g := buildTestGraph(t)
	return NewNavigationService(g, snap.NewNodeLocator(g), routingalgorithm.NewRouteAlgorithm(g), 1, options...), g
}

type memoryCache struct {
	mu     sync.Mutex
	routes map[string]kv.CachedRoute
	hits   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{routes: make(map[string]kv.CachedRoute)}
}

func (m *memoryCache) Get(ctx context.Context, from, to int64) (kv.CachedRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	route, ok := m.routes[fmt.Sprintf("%d:%d", from, to)]
	if !ok {
		return kv.CachedRoute{}, kv.ErrCacheMiss
	}
	m.hits++
	return route, nil
}

func (m *memoryCache) Set(ctx context.Context, from, to int64, route kv.CachedRoute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[fmt.Sprintf("%d:%d", from, to)] = route
	return nil
}

type abortingRouting struct{}

func (abortingRouting) ShortestPath(ctx context.Context, algorithm routingalgorithm.Algorithm, from, to int64) (routingalgorithm.ShortestPath, error) {
	<-ctx.Done()
	return routingalgorithm.ShortestPath{}, fmt.Errorf("%w: %w", routingalgorithm.ErrSearchAborted, ctx.Err())
}

// failingRouting gagal untuk tujuan yang ada di fail, sel yang gagal duluan sengaja paling lambat selesai.
type failingRouting struct {
	fail map[int64]time.Duration
}

func (f failingRouting) ShortestPath(ctx context.Context, algorithm routingalgorithm.Algorithm, from, to int64) (routingalgorithm.ShortestPath, error) {
	delay, ok := f.fail[to]
	if !ok {
		return routingalgorithm.ShortestPath{Nodes: []int64{from, to}, Dist: 1}, nil
	}
	time.Sleep(delay)
	return routingalgorithm.ShortestPath{}, fmt.Errorf("search to node %d failed", to)
}

func TestShortestPath(t *testing.T) {
	svc, g := newTestService(t)

	res, err := svc.ShortestPath(context.Background(), -7.5701, 110.8201, -7.5599, 110.8301, "")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, int64(1), res.Source)
	assert.Equal(t, int64(4), res.Destination)
	require.Len(t, res.Nodes, 3)
	assert.Equal(t, int64(1), res.Nodes[0])
	assert.Equal(t, int64(4), res.Nodes[2])

	want := geo.Distance(g.Lon(1), g.Lat(1), g.Lon(res.Nodes[1]), g.Lat(res.Nodes[1])) +
		geo.Distance(g.Lon(res.Nodes[1]), g.Lat(res.Nodes[1]), g.Lon(4), g.Lat(4))
	assert.InDelta(t, want, res.Dist, 1e-9)

	path, _, err := polyline.DecodeCoords([]byte(res.Path))
	require.NoError(t, err)
	assert.Len(t, path, 3)

	require.Len(t, res.Directions, 2)
	assert.Equal(t, "START", res.Directions[0].TurnType)
}

func TestShortestPathDijkstraSameDistance(t *testing.T) {
	svc, _ := newTestService(t)

	astar, err := svc.ShortestPath(context.Background(), -7.57, 110.82, -7.56, 110.83, "astar")
	require.NoError(t, err)
	dijkstra, err := svc.ShortestPath(context.Background(), -7.57, 110.82, -7.56, 110.83, "dijkstra")
	require.NoError(t, err)
	assert.InDelta(t, astar.Dist, dijkstra.Dist, 1e-9)
}

func TestShortestPathErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// di luar coverage
	_, err := svc.ShortestPath(ctx, 51.5, -0.12, -7.56, 110.83, "")
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))

	// beda komponen
	res, err := svc.ShortestPath(ctx, -7.57, 110.82, -7.57, 110.86, "")
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.False(t, res.Found)
	assert.Equal(t, int64(6), res.Destination)

	_, err = svc.ShortestPath(ctx, -7.57, 110.82, -7.56, 110.83, "bellman-ford")
	assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
	assert.ErrorIs(t, err, routingalgorithm.ErrUnknownAlgorithm)
}

func TestShortestPathSearchTimeout(t *testing.T) {
	g := buildTestGraph(t)
	svc := NewNavigationService(g, snap.NewNodeLocator(g), abortingRouting{}, 1, WithSearchTimeout(10*time.Millisecond))

	_, err := svc.ShortestPath(context.Background(), -7.57, 110.82, -7.56, 110.83, "")
	assert.Equal(t, server.ErrSearchTimeout, server.CodeOf(err))
	assert.ErrorIs(t, err, routingalgorithm.ErrSearchAborted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestShortestPathCache(t *testing.T) {
	cache := newMemoryCache()
	svc, _ := newTestService(t, WithRouteCache(cache))
	ctx := context.Background()

	first, err := svc.ShortestPath(ctx, -7.57, 110.82, -7.56, 110.83, "")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.ShortestPath(ctx, -7.57, 110.82, -7.56, 110.83, "")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, 1, cache.hits)

	// unreachable juga di cache
	_, err = svc.ShortestPath(ctx, -7.57, 110.82, -7.57, 110.86, "")
	assert.Error(t, err)
	_, err = svc.ShortestPath(ctx, -7.57, 110.82, -7.57, 110.86, "")
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
	assert.Equal(t, 2, cache.hits)
}

func TestNearestNode(t *testing.T) {
	svc, _ := newTestService(t)

	n, err := svc.NearestNode(context.Background(), -7.5601, 110.8299)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n.NodeID)
	assert.Equal(t, "Pasar Utara", n.Name)
	assert.InDelta(t, geo.Distance(110.8299, -7.5601, 110.83, -7.56), n.Distance, 1e-9)

	_, err = svc.NearestNode(context.Background(), 0, 0)
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
}

func TestDistanceMatrix(t *testing.T) {
	svc, g := newTestService(t, WithWorkers(3))

	sources := []datastructure.Coordinate{
		datastructure.NewCoordinate(-7.57, 110.82),
		datastructure.NewCoordinate(-7.57, 110.85),
	}
	targets := []datastructure.Coordinate{
		datastructure.NewCoordinate(-7.57, 110.83),
		datastructure.NewCoordinate(-7.56, 110.83),
		datastructure.NewCoordinate(-7.57, 110.86),
	}

	matrix, err := svc.DistanceMatrix(context.Background(), sources, targets)
	require.NoError(t, err)
	require.Len(t, matrix, 2)
	require.Len(t, matrix[0], 3)

	d12 := geo.Distance(g.Lon(1), g.Lat(1), g.Lon(2), g.Lat(2))
	assert.InDelta(t, d12, matrix[0][0], 1e-9)
	assert.Greater(t, matrix[0][1], d12)
	assert.Equal(t, -1.0, matrix[0][2])
	assert.Equal(t, -1.0, matrix[1][0])
	assert.InDelta(t, geo.Distance(g.Lon(5), g.Lat(5), g.Lon(6), g.Lat(6)), matrix[1][2], 1e-9)

	_, err = svc.DistanceMatrix(context.Background(), []datastructure.Coordinate{datastructure.NewCoordinate(10, 10)}, targets)
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
}

func TestDistanceMatrixFirstErrorInRowMajorOrder(t *testing.T) {
	g := buildTestGraph(t)
	routing := failingRouting{fail: map[int64]time.Duration{
		2: 50 * time.Millisecond,
		6: 0,
	}}
	svc := NewNavigationService(g, snap.NewNodeLocator(g), routing, 1, WithWorkers(4))

	sources := []datastructure.Coordinate{datastructure.NewCoordinate(-7.57, 110.82)}
	targets := []datastructure.Coordinate{
		datastructure.NewCoordinate(-7.56, 110.82),
		datastructure.NewCoordinate(-7.57, 110.83),
		datastructure.NewCoordinate(-7.57, 110.86),
	}

	for i := 0; i < 5; i++ {
		_, err := svc.DistanceMatrix(context.Background(), sources, targets)
		require.Error(t, err)
		assert.Equal(t, server.ErrInternalServerError, server.CodeOf(err))
		assert.ErrorContains(t, err, "search to node 2 failed")
	}
}

func TestGraphInfoAndSearchNodes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	info := svc.GraphInfo(ctx)
	assert.Equal(t, 6, info.Nodes)
	assert.Equal(t, 5, info.Ways)
	assert.Equal(t, 6, info.Vertices)
	assert.Equal(t, 5, info.Edges)
	assert.Equal(t, 2, info.Components)
	assert.Equal(t, -7.57, info.SouthWest.Lat)
	assert.Equal(t, 110.86, info.NorthEast.Lon)

	nodes, err := svc.SearchNodesByName(ctx, "pasar", 10)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Pasar Pulau", nodes[0].Name)
	assert.Equal(t, "Pasar Utara", nodes[1].Name)

	_, err = svc.SearchNodesByName(ctx, "", 10)
	assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
}
