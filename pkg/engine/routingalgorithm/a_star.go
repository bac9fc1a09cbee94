package routingalgorithm

import (
	"context"
	"errors"
	"fmt"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

var (
	ErrSearchAborted    = errors.New("shortest path search aborted")
	ErrUnknownAlgorithm = errors.New("unknown routing algorithm")
)

type Algorithm string

const (
	ASTAR    Algorithm = "astar"
	DIJKSTRA Algorithm = "dijkstra"
)

// ShortestPath hasil search. Nodes kosong = destination tidak reachable dari origin.
type ShortestPath struct {
	Nodes   []int64
	Dist    float64 // miles
	Settled int     // jumlah node yang di settle selama search
}

func (sp ShortestPath) Found() bool {
	return len(sp.Nodes) > 0
}

type RouteAlgorithm struct {
	graph Graph
}

func NewRouteAlgorithm(graph Graph) *RouteAlgorithm {
	return &RouteAlgorithm{graph: graph}
}

func (rt *RouteAlgorithm) ShortestPath(ctx context.Context, algorithm Algorithm, from, to int64) (ShortestPath, error) {
	switch algorithm {
	case ASTAR, "":
		return rt.ShortestPathAStar(ctx, from, to)
	case DIJKSTRA:
		return rt.ShortestPathDijkstra(ctx, from, to)
	default:
		return ShortestPath{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
}

// https://www.cs.princeton.edu/courses/archive/spr06/cos423/Handouts/GH05.pdf

// ShortestPathAStar A* dengan edge cost & heuristic = jarak haversine (admissible & consistent).
func (rt *RouteAlgorithm) ShortestPathAStar(ctx context.Context, from, to int64) (ShortestPath, error) {
	toLon, toLat := rt.graph.Lon(to), rt.graph.Lat(to)
	return rt.search(ctx, from, to, func(v int64) float64 {
		return geo.Distance(rt.graph.Lon(v), rt.graph.Lat(v), toLon, toLat)
	})
}

// ShortestPathDijkstra loop yang sama dengan heuristic 0.
func (rt *RouteAlgorithm) ShortestPathDijkstra(ctx context.Context, from, to int64) (ShortestPath, error) {
	return rt.search(ctx, from, to, func(v int64) float64 {
		return 0
	})
}

/*
search. frontier tidak punya decrease-key: node yang distTo nya membaik di insert lagi,
entry lama (stale) di buang waktu di pop kalau node nya sudah visited.
*/
func (rt *RouteAlgorithm) search(ctx context.Context, from, to int64, heuristic func(v int64) float64) (ShortestPath, error) {
	if !rt.graph.IsVertex(from) || !rt.graph.IsVertex(to) {
		return ShortestPath{}, nil
	}

	pq := datastructure.NewMinHeap[int64]()

	distTo := make(map[int64]float64)
	distTo[from] = 0.0

	edgeTo := make(map[int64]int64)

	visited := make(map[int64]struct{})

	pq.Insert(datastructure.NewPriorityQueueNode(heuristic(from), from))

	for pq.Size() > 0 {
		if err := ctx.Err(); err != nil {
			return ShortestPath{Settled: len(visited)}, fmt.Errorf("%w: %w", ErrSearchAborted, err)
		}

		current, _ := pq.ExtractMin()
		if _, ok := visited[current.Item]; ok {
			continue
		}

		if current.Item == to {
			nodes, ok := rt.reconstructPath(edgeTo, from, to)
			if !ok {
				return ShortestPath{Settled: len(visited)}, nil
			}
			return ShortestPath{
				Nodes:   nodes,
				Dist:    distTo[to],
				Settled: len(visited) + 1,
			}, nil
		}

		visited[current.Item] = struct{}{}

		curLon, curLat := rt.graph.Lon(current.Item), rt.graph.Lat(current.Item)
		for _, neighbor := range rt.graph.Adjacent(current.Item) {
			if _, ok := visited[neighbor]; ok {
				continue
			}

			newDist := distTo[current.Item] + geo.Distance(curLon, curLat, rt.graph.Lon(neighbor), rt.graph.Lat(neighbor))
			if oldDist, ok := distTo[neighbor]; ok && newDist >= oldDist {
				continue
			}
			distTo[neighbor] = newDist
			edgeTo[neighbor] = current.Item

			pq.Insert(datastructure.NewPriorityQueueNode(newDist+heuristic(neighbor), neighbor))
		}
	}

	// frontier habis, destination beda komponen dengan origin
	return ShortestPath{Settled: len(visited)}, nil
}

// reconstructPath jalan mundur lewat edgeTo dari destination ke origin. false kalau rantai nya putus.
func (rt *RouteAlgorithm) reconstructPath(edgeTo map[int64]int64, from, to int64) ([]int64, bool) {
	path := []int64{to}
	curr := to
	for curr != from {
		prev, ok := edgeTo[curr]
		if !ok || len(path) > len(edgeTo)+1 {
			return []int64{}, false
		}
		path = append(path, prev)
		curr = prev
	}
	return util.ReverseG(path), true
}
