package snap

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

const (
	rtreeMinChildren   = 25
	rtreeMaxChildren   = 50
	rtreeCandidateSize = 16
	pointTolerance     = 1e-9
)

type vertexLeaf struct {
	id    int64
	order int
	lon   float64
	lat   float64
	rect  rtreego.Rect
}

func (v *vertexLeaf) Bounds() rtreego.Rect {
	return v.rect
}

// RtreeLocator r-tree 3 dimensi di atas unit sphere. jarak euclidean (chord) monoton dengan
// jarak great-circle, jadi k kandidat terdekat dari r-tree pasti memuat node terdekat.
// kandidat dipilih ulang pakai haversine + urutan enumerasi buat tie-break.
type RtreeLocator struct {
	tree *rtreego.Rtree
	size int
}

func NewRtreeLocator(graph Graph) *RtreeLocator {
	tree := rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren)

	i := 0
	graph.ForEachVertex(func(id int64, lon, lat float64) bool {
		leaf := &vertexLeaf{
			id:    id,
			order: i,
			lon:   lon,
			lat:   lat,
			rect:  unitSpherePoint(lon, lat).ToRect(pointTolerance),
		}
		tree.Insert(leaf)
		i++
		return true
	})
	return &RtreeLocator{tree: tree, size: i}
}

func (rl *RtreeLocator) Closest(lon, lat float64) (int64, error) {
	if rl.size == 0 {
		return -1, ErrEmptyGraph
	}

	candidates := rl.tree.NearestNeighbors(rtreeCandidateSize, unitSpherePoint(lon, lat))

	bestID := int64(-1)
	bestDist := math.Inf(1)
	bestOrder := math.MaxInt
	for _, c := range candidates {
		leaf, ok := c.(*vertexLeaf)
		if !ok || leaf == nil {
			continue
		}
		dist := geo.Distance(lon, lat, leaf.lon, leaf.lat)
		if dist < bestDist || (dist == bestDist && leaf.order < bestOrder) {
			bestDist = dist
			bestID = leaf.id
			bestOrder = leaf.order
		}
	}
	if bestID == -1 {
		return -1, ErrEmptyGraph
	}
	return bestID, nil
}

func unitSpherePoint(lon, lat float64) rtreego.Point {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180
	return rtreego.Point{
		math.Cos(phi) * math.Cos(lambda),
		math.Cos(phi) * math.Sin(lambda),
		math.Sin(phi),
	}
}
