package routingalgorithm

import (
	"context"
	"testing"
	"time"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type testWay struct {
	id    int64
	nodes []int64
	name  string
	valid bool
}

func buildGraph(t *testing.T, nodes map[int64][2]float64, order []int64, ways []testWay) *datastructure.Graph {
	t.Helper()
	b := datastructure.NewGraphBuilder(nil)
	for _, id := range order {
		require.NoError(t, b.AddNode(id, nodes[id][0], nodes[id][1], ""))
	}
	for _, w := range ways {
		tags := map[string]string{"name": w.name, "highway": "footway"}
		if w.valid {
			tags["highway"] = "residential"
		}
		require.NoError(t, b.AddWay(datastructure.WayEvent{ID: w.id, NodeIDs: w.nodes, Tags: tags}))
	}
	g, _ := b.Finish()
	return g
}

func pathDist(g *datastructure.Graph, path []int64) float64 {
	dist := 0.0
	for i := 0; i+1 < len(path); i++ {
		dist += geo.Distance(g.Lon(path[i]), g.Lat(path[i]), g.Lon(path[i+1]), g.Lat(path[i+1]))
	}
	return dist
}

// A(0,0), B(0,1), C(1,1) dalam (lon, lat)
func mainStreetNodes() (map[int64][2]float64, []int64) {
	return map[int64][2]float64{
		1: {0, 0},
		2: {0, 1},
		3: {1, 1},
	}, []int64{1, 2, 3}
}

func TestShortestPathAStarMainStreet(t *testing.T) {
	nodes, order := mainStreetNodes()
	g := buildGraph(t, nodes, order, []testWay{
		{id: 1, nodes: []int64{1, 2}, name: "Main St", valid: true},
		{id: 2, nodes: []int64{2, 3}, name: "Main St", valid: true},
	})
	rt := NewRouteAlgorithm(g)

	sp, err := rt.ShortestPathAStar(context.Background(), 1, 3)
	require.NoError(t, err)
	require.True(t, sp.Found())
	assert.Equal(t, []int64{1, 2, 3}, sp.Nodes)
	assert.InDelta(t, geo.Distance(0, 0, 0, 1)+geo.Distance(0, 1, 1, 1), sp.Dist, 1e-9)
}

func TestShortestPathAStarInvalidWayUnreachable(t *testing.T) {
	nodes, order := mainStreetNodes()
	g := buildGraph(t, nodes, order, []testWay{
		{id: 1, nodes: []int64{1, 2}, name: "Main St", valid: true},
		{id: 2, nodes: []int64{2, 3}, name: "Main St", valid: false},
	})
	rt := NewRouteAlgorithm(g)

	// node 3 di prune karena tidak punya edge valid
	sp, err := rt.ShortestPathAStar(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.False(t, sp.Found())
	assert.Empty(t, sp.Nodes)
}

/*
dua komponen terpisah:

	1 ---- 2        3 ---- 4

search 1 -> 4 harus habis frontier nya & return unreachable, bukan error.
*/
func TestShortestPathAStarDisconnected(t *testing.T) {
	nodes := map[int64][2]float64{
		1: {0, 0},
		2: {0.01, 0},
		3: {0.05, 0},
		4: {0.06, 0},
	}
	g := buildGraph(t, nodes, []int64{1, 2, 3, 4}, []testWay{
		{id: 1, nodes: []int64{1, 2}, name: "Kiri", valid: true},
		{id: 2, nodes: []int64{3, 4}, name: "Kanan", valid: true},
	})
	rt := NewRouteAlgorithm(g)

	sp, err := rt.ShortestPathAStar(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.False(t, sp.Found())
	assert.Equal(t, 2, sp.Settled)
}

/*
jalan memutar vs jalan lurus:

	      A(0.5, 0.1)
	     /          \
	S(0,0)          T(1,0)
	     \          /
	      B(0.5,-0.6)
	           \
	            D(0.6,-1) dead end
*/
func TestShortestPathAStarPicksShorterBranch(t *testing.T) {
	nodes := map[int64][2]float64{
		10: {0, 0},
		11: {0.5, 0.1},
		12: {0.5, -0.6},
		13: {1, 0},
		14: {0.6, -1},
	}
	g := buildGraph(t, nodes, []int64{10, 11, 12, 13, 14}, []testWay{
		{id: 1, nodes: []int64{10, 11, 13}, name: "Atas", valid: true},
		{id: 2, nodes: []int64{10, 12, 13}, name: "Bawah", valid: true},
		{id: 3, nodes: []int64{12, 14}, name: "Buntu", valid: true},
	})
	rt := NewRouteAlgorithm(g)

	sp, err := rt.ShortestPathAStar(context.Background(), 10, 13)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 13}, sp.Nodes)
	assert.InDelta(t, pathDist(g, sp.Nodes), sp.Dist, 1e-9)

	back, err := rt.ShortestPathAStar(context.Background(), 13, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{13, 11, 10}, back.Nodes)
	assert.InDelta(t, sp.Dist, back.Dist, 1e-9)
}

func TestShortestPathSameOriginDestination(t *testing.T) {
	nodes, order := mainStreetNodes()
	g := buildGraph(t, nodes, order, []testWay{
		{id: 1, nodes: []int64{1, 2, 3}, name: "Main St", valid: true},
	})
	rt := NewRouteAlgorithm(g)

	sp, err := rt.ShortestPathAStar(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, sp.Nodes)
	assert.Equal(t, 0.0, sp.Dist)
}

func TestShortestPathAborted(t *testing.T) {
	nodes, order := mainStreetNodes()
	g := buildGraph(t, nodes, order, []testWay{
		{id: 1, nodes: []int64{1, 2, 3}, name: "Main St", valid: true},
	})
	rt := NewRouteAlgorithm(g)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sp, err := rt.ShortestPathAStar(ctx, 1, 3)
	assert.ErrorIs(t, err, ErrSearchAborted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, sp.Found())

	deadlineCtx, cancelDeadline := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelDeadline()
	_, err = rt.ShortestPathDijkstra(deadlineCtx, 1, 3)
	assert.ErrorIs(t, err, ErrSearchAborted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestShortestPathAlgorithmSelection(t *testing.T) {
	nodes, order := mainStreetNodes()
	g := buildGraph(t, nodes, order, []testWay{
		{id: 1, nodes: []int64{1, 2, 3}, name: "Main St", valid: true},
	})
	rt := NewRouteAlgorithm(g)

	for _, algo := range []Algorithm{ASTAR, DIJKSTRA, ""} {
		sp, err := rt.ShortestPath(context.Background(), algo, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, sp.Nodes)
	}

	_, err := rt.ShortestPath(context.Background(), "bellman-ford", 1, 3)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

// A* (heuristic haversine) harus selalu dapat cost yang sama dengan dijkstra (heuristic 0).
func TestShortestPathAStarMatchesDijkstra(t *testing.T) {
	rand.Seed(7)

	for trial := 0; trial < 5; trial++ {
		n := 80
		nodes := make(map[int64][2]float64, n)
		order := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			id := int64(i + 1)
			nodes[id] = [2]float64{110.80 + rand.Float64()*0.1, -7.60 + rand.Float64()*0.1}
			order = append(order, id)
		}
		ways := make([]testWay, 0)
		for w := 0; w < 160; w++ {
			a := int64(rand.Intn(n) + 1)
			b := int64(rand.Intn(n) + 1)
			ways = append(ways, testWay{id: int64(w + 1), nodes: []int64{a, b}, name: "Random", valid: true})
		}
		g := buildGraph(t, nodes, order, ways)
		rt := NewRouteAlgorithm(g)

		vertices := g.Vertices()
		for q := 0; q < 30; q++ {
			from := vertices[rand.Intn(len(vertices))]
			to := vertices[rand.Intn(len(vertices))]

			astar, err := rt.ShortestPathAStar(context.Background(), from, to)
			require.NoError(t, err)
			dijkstra, err := rt.ShortestPathDijkstra(context.Background(), from, to)
			require.NoError(t, err)

			require.Equal(t, dijkstra.Found(), astar.Found())
			if !astar.Found() {
				continue
			}
			assert.InDelta(t, dijkstra.Dist, astar.Dist, 1e-9)
			assert.InDelta(t, pathDist(g, astar.Nodes), astar.Dist, 1e-9)
			assert.Equal(t, from, astar.Nodes[0])
			assert.Equal(t, to, astar.Nodes[len(astar.Nodes)-1])
			assert.LessOrEqual(t, astar.Settled, dijkstra.Settled)

			// heuristic tidak pernah overestimate sisa jarak
			assert.LessOrEqual(t, geo.Distance(g.Lon(from), g.Lat(from), g.Lon(to), g.Lat(to)), astar.Dist+1e-9)
		}
	}
}
