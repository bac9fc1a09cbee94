package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lintang-b-s/osmroute/pkg/concurrent"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/guidance"
	"github.com/lintang-b-s/osmroute/pkg/kv"
	"github.com/lintang-b-s/osmroute/pkg/server"
	"github.com/lintang-b-s/osmroute/pkg/snap"
)

var ErrNoRoute = errors.New("no route found")

type Graph interface {
	WayName(id1, id2 int64) string
	Lon(id int64) float64
	Lat(id int64) float64
	NodeName(id int64) string
	Bounds() (datastructure.Coordinate, datastructure.Coordinate)
	FindNodesByName(prefix string, limit int) []int64
	NumNodes() int
	NumWays() int
	NumVertices() int
	NumEdges() int
	NumComponents() int
}

type RoutingAlgorithm interface {
	ShortestPath(ctx context.Context, algorithm routingalgorithm.Algorithm, from, to int64) (routingalgorithm.ShortestPath, error)
}

type Locator interface {
	Closest(lon, lat float64) (int64, error)
}

type RouteCache interface {
	Get(ctx context.Context, from, to int64) (kv.CachedRoute, error)
	Set(ctx context.Context, from, to int64, route kv.CachedRoute) error
}

type NavigationService struct {
	graph         Graph
	locator       Locator
	routing       RoutingAlgorithm
	cache         RouteCache
	coverage      geo.Coverage
	searchTimeout time.Duration
	algorithm     routingalgorithm.Algorithm
	workers       int
	simplifyTol   float64 // meter
}

type Option func(*NavigationService)

// WithRouteCache cache hasil search per pasangan node.
func WithRouteCache(cache RouteCache) Option {
	return func(uc *NavigationService) {
		uc.cache = cache
	}
}

func WithSearchTimeout(timeout time.Duration) Option {
	return func(uc *NavigationService) {
		uc.searchTimeout = timeout
	}
}

func WithDefaultAlgorithm(algorithm string) Option {
	return func(uc *NavigationService) {
		uc.algorithm = routingalgorithm.Algorithm(algorithm)
	}
}

func WithWorkers(workers int) Option {
	return func(uc *NavigationService) {
		uc.workers = workers
	}
}

// WithSimplifyTolerance toleransi (meter) simplifikasi geometry route di response. 0 = tanpa simplifikasi.
func WithSimplifyTolerance(meters float64) Option {
	return func(uc *NavigationService) {
		uc.simplifyTol = meters
	}
}

func NewNavigationService(graph Graph, locator Locator, routing RoutingAlgorithm, coverageMarginMiles float64,
	options ...Option) *NavigationService {
	sw, ne := graph.Bounds()
	uc := &NavigationService{
		graph:       graph,
		locator:     locator,
		routing:     routing,
		coverage:    geo.NewCoverage(sw, ne, coverageMarginMiles),
		algorithm:   routingalgorithm.ASTAR,
		workers:     8,
		simplifyTol: geo.DefaultSimplifyToleranceMeters,
	}
	for _, option := range options {
		option(uc)
	}
	return uc
}

type RouteResult struct {
	Path        string
	Dist        float64 // miles
	Nodes       []int64
	Coordinates []datastructure.Coordinate
	Directions  []guidance.DrivingDirection
	Source      int64
	Destination int64
	Found       bool
	Cached      bool
}

const notCoveredMsg = "sorry!! the location you entered is not covered on my map :(, please use diferrent opensteetmap file"

func (uc *NavigationService) ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64, algorithm string) (RouteResult, error) {
	algo := uc.algorithm
	if algorithm != "" {
		algo = routingalgorithm.Algorithm(algorithm)
	}

	from, err := uc.SnapLocToStreetNode(srcLat, srcLon)
	if err != nil {
		return RouteResult{}, err
	}
	to, err := uc.SnapLocToStreetNode(dstLat, dstLon)
	if err != nil {
		return RouteResult{}, err
	}

	sp, cached, err := uc.search(ctx, algo, from, to)
	if err != nil {
		return RouteResult{Source: from, Destination: to}, err
	}
	if len(sp.Nodes) == 0 {
		return RouteResult{Source: from, Destination: to},
			server.WrapErrorf(ErrNoRoute, server.ErrNotFound, "destination is not reachable from origin (node %d -> node %d)", from, to)
	}

	coords := datastructure.RouteCoordinates(uc.graph, sp.Nodes)
	return RouteResult{
		Path:        datastructure.CreatePolyline(geo.SimplifyRoute(coords, uc.simplifyTol)),
		Dist:        sp.Dist,
		Nodes:       sp.Nodes,
		Coordinates: coords,
		Directions:  guidance.GetDrivingDirections(uc.graph, sp.Nodes),
		Source:      from,
		Destination: to,
		Found:       true,
		Cached:      cached,
	}, nil
}

// search shortest path dengan search timeout. hasil (termasuk unreachable) disimpan di cache kalau ada.
func (uc *NavigationService) search(ctx context.Context, algo routingalgorithm.Algorithm, from, to int64) (kv.CachedRoute, bool, error) {
	if uc.cache != nil {
		route, err := uc.cache.Get(ctx, from, to)
		if err == nil {
			return route, true, nil
		}
		if !errors.Is(err, kv.ErrCacheMiss) {
			log.Printf("route cache get %d -> %d: %v", from, to, err)
		}
	}

	searchCtx := ctx
	if uc.searchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, uc.searchTimeout)
		defer cancel()
	}

	sp, err := uc.routing.ShortestPath(searchCtx, algo, from, to)
	switch {
	case errors.Is(err, routingalgorithm.ErrUnknownAlgorithm):
		return kv.CachedRoute{}, false, server.WrapErrorf(err, server.ErrBadParamInput, "unknown routing algorithm %q", algo)
	case errors.Is(err, routingalgorithm.ErrSearchAborted):
		return kv.CachedRoute{}, false, server.WrapErrorf(err, server.ErrSearchTimeout, "shortest path search aborted after %s", uc.searchTimeout)
	case err != nil:
		return kv.CachedRoute{}, false, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	route := kv.CachedRoute{Nodes: sp.Nodes, Dist: sp.Dist}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, from, to, route); err != nil {
			log.Printf("route cache set %d -> %d: %v", from, to, err)
		}
	}
	return route, false, nil
}

// SnapLocToStreetNode node routable terdekat dari koordinat. koordinat di luar coverage map ditolak.
func (uc *NavigationService) SnapLocToStreetNode(lat, lon float64) (int64, error) {
	if !uc.coverage.Contains(lat, lon) {
		return 0, server.NewErrorf(server.ErrNotFound, notCoveredMsg)
	}
	nodeID, err := uc.locator.Closest(lon, lat)
	if errors.Is(err, snap.ErrEmptyGraph) {
		return 0, server.WrapErrorf(err, server.ErrNotFound, notCoveredMsg)
	}
	if err != nil {
		return 0, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return nodeID, nil
}

type NearestNode struct {
	NodeID   int64
	Lat      float64
	Lon      float64
	Name     string
	Distance float64 // miles
}

func (uc *NavigationService) NearestNode(ctx context.Context, lat, lon float64) (NearestNode, error) {
	nodeID, err := uc.SnapLocToStreetNode(lat, lon)
	if err != nil {
		return NearestNode{}, err
	}
	nLat, nLon := uc.graph.Lat(nodeID), uc.graph.Lon(nodeID)
	return NearestNode{
		NodeID:   nodeID,
		Lat:      nLat,
		Lon:      nLon,
		Name:     uc.graph.NodeName(nodeID),
		Distance: geo.Distance(lon, lat, nLon, nLat),
	}, nil
}

type distanceMatrixCell struct {
	sourceIdx int
	targetIdx int
	dist      float64
	err       error
}

/*
DistanceMatrix jarak shortest path (miles) setiap pasangan source x target, -1 kalau unreachable.
setiap sel di search di worker pool, search timeout berlaku per sel.
*/
func (uc *NavigationService) DistanceMatrix(ctx context.Context, sources, targets []datastructure.Coordinate) ([][]float64, error) {
	sourceNodes, err := uc.snapAll(sources)
	if err != nil {
		return nil, err
	}
	targetNodes, err := uc.snapAll(targets)
	if err != nil {
		return nil, err
	}

	workers := concurrent.NewWorkerPool[concurrent.DistanceMatrixParam, distanceMatrixCell](uc.workers,
		len(sourceNodes)*len(targetNodes))
	for i, from := range sourceNodes {
		for j, to := range targetNodes {
			workers.AddJob(concurrent.NewDistanceMatrixParam(i, j, from, to))
		}
	}
	workers.Close()
	workers.Start(func(job concurrent.DistanceMatrixParam) distanceMatrixCell {
		route, _, err := uc.search(ctx, uc.algorithm, job.From, job.To)
		cell := distanceMatrixCell{sourceIdx: job.SourceIdx, targetIdx: job.TargetIdx, dist: route.Dist, err: err}
		if err == nil && len(route.Nodes) == 0 {
			cell.dist = -1
		}
		return cell
	})
	workers.Wait()

	matrix := make([][]float64, len(sourceNodes))
	errs := make([][]error, len(sourceNodes))
	for i := range matrix {
		matrix[i] = make([]float64, len(targetNodes))
		errs[i] = make([]error, len(targetNodes))
	}

	for cell := range workers.CollectResults() {
		matrix[cell.sourceIdx][cell.targetIdx] = cell.dist
		errs[cell.sourceIdx][cell.targetIdx] = cell.err
	}
	// error dari sel pertama yang gagal (row-major), sama seperti snapAll
	for _, row := range errs {
		for _, err := range row {
			if err != nil {
				return nil, err
			}
		}
	}
	return matrix, nil
}

type snapResult struct {
	idx    int
	nodeID int64
	err    error
}

// snapAll snap semua koordinat di worker pool, urutan hasil sama dengan urutan coords.
func (uc *NavigationService) snapAll(coords []datastructure.Coordinate) ([]int64, error) {
	workers := concurrent.NewWorkerPool[concurrent.SnapParam, snapResult](uc.workers, len(coords))
	for i, c := range coords {
		workers.AddJob(concurrent.NewSnapParam(i, c.Lat, c.Lon))
	}
	workers.Close()
	workers.Start(func(job concurrent.SnapParam) snapResult {
		nodeID, err := uc.SnapLocToStreetNode(job.Lat, job.Lon)
		return snapResult{idx: job.Idx, nodeID: nodeID, err: err}
	})
	workers.Wait()

	nodes := make([]int64, len(coords))
	errs := make([]error, len(coords))
	for res := range workers.CollectResults() {
		nodes[res.idx] = res.nodeID
		errs[res.idx] = res.err
	}
	// error dari koordinat pertama yang gagal, supaya deterministik
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

type GraphInfo struct {
	Nodes      int
	Ways       int
	Vertices   int
	Edges      int
	Components int
	SouthWest  datastructure.Coordinate
	NorthEast  datastructure.Coordinate
}

func (uc *NavigationService) GraphInfo(ctx context.Context) GraphInfo {
	sw, ne := uc.graph.Bounds()
	return GraphInfo{
		Nodes:      uc.graph.NumNodes(),
		Ways:       uc.graph.NumWays(),
		Vertices:   uc.graph.NumVertices(),
		Edges:      uc.graph.NumEdges(),
		Components: uc.graph.NumComponents(),
		SouthWest:  sw,
		NorthEast:  ne,
	}
}

type NamedNode struct {
	NodeID int64
	Name   string
	Lat    float64
	Lon    float64
}

func (uc *NavigationService) SearchNodesByName(ctx context.Context, prefix string, limit int) ([]NamedNode, error) {
	if prefix == "" {
		return nil, server.NewErrorf(server.ErrBadParamInput, "prefix must not be empty")
	}
	ids := uc.graph.FindNodesByName(prefix, limit)
	nodes := make([]NamedNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, NamedNode{
			NodeID: id,
			Name:   uc.graph.NodeName(id),
			Lat:    uc.graph.Lat(id),
			Lon:    uc.graph.Lon(id),
		})
	}
	return nodes, nil
}
