package snap

import (
	"errors"
	"math"

	"github.com/lintang-b-s/osmroute/pkg/geo"
)

var (
	ErrEmptyGraph = errors.New("graph has no routable vertices")
)

type Graph interface {
	ForEachVertex(fn func(id int64, lon, lat float64) bool)
	Lon(id int64) float64
	Lat(id int64) float64
}

// Locator cari vertex graph terdekat dari koordinat sembarang.
type Locator interface {
	Closest(lon, lat float64) (int64, error)
}

// NodeLocator linear scan semua vertex. O(n) per query.
type NodeLocator struct {
	graph Graph
}

func NewNodeLocator(graph Graph) *NodeLocator {
	return &NodeLocator{graph: graph}
}

// Closest id vertex dengan jarak haversine terkecil. kalau ada yang sama, vertex yang ketemu duluan yang menang.
func (nl *NodeLocator) Closest(lon, lat float64) (int64, error) {
	bestID := int64(-1)
	bestDist := math.Inf(1)
	found := false
	nl.graph.ForEachVertex(func(id int64, vLon, vLat float64) bool {
		dist := geo.Distance(lon, lat, vLon, vLat)
		if dist < bestDist {
			bestDist = dist
			bestID = id
			found = true
		}
		return true
	})
	if !found {
		return -1, ErrEmptyGraph
	}
	return bestID, nil
}
