package snap

import (
	"math"

	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/uber/h3-go/v4"
)

const (
	defaultH3Resolution = 9
	maxH3Ring           = 10
	h3DistortionFactor  = 1.25
)

// H3Locator vertex dikelompokkan per h3 cell. query cek grid disk yang makin besar sampai ada kandidat.
type H3Locator struct {
	graph      Graph
	resolution int
	cells      map[h3.Cell][]int64
	order      map[int64]int
	fallback   *NodeLocator
}

func NewH3Locator(graph Graph, resolution int) *H3Locator {
	if resolution <= 0 || resolution > 15 {
		resolution = defaultH3Resolution
	}
	hl := &H3Locator{
		graph:      graph,
		resolution: resolution,
		cells:      make(map[h3.Cell][]int64),
		order:      make(map[int64]int),
		fallback:   NewNodeLocator(graph),
	}

	i := 0
	graph.ForEachVertex(func(id int64, lon, lat float64) bool {
		cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), resolution)
		hl.cells[cell] = append(hl.cells[cell], id)
		hl.order[id] = i
		i++
		return true
	})
	return hl
}

func (hl *H3Locator) NumCells() int {
	return len(hl.cells)
}

/*
Closest. mulai dari cell query, grid disk diperbesar satu ring setiap kali belum ada kandidat.
setelah ada kandidat, disk diperbesar lagi sampai ring terluar pasti lebih jauh dari kandidat terbaik,
jadi hasilnya sama dengan linear scan. di luar maxH3Ring pakai linear scan.
*/
func (hl *H3Locator) Closest(lon, lat float64) (int64, error) {
	if len(hl.order) == 0 {
		return -1, ErrEmptyGraph
	}
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), hl.resolution)

	for ring := 0; ring <= maxH3Ring; ring++ {
		if !hl.hasCandidate(h3.GridDisk(origin, ring)) {
			continue
		}
		id, bestDist := hl.closestIn(h3.GridDisk(origin, ring+1), lon, lat)

		needed := hl.safeRing(origin, bestDist)
		if needed <= ring+1 {
			return id, nil
		}
		if needed > 2*maxH3Ring {
			return hl.fallback.Closest(lon, lat)
		}
		id, _ = hl.closestIn(h3.GridDisk(origin, needed), lon, lat)
		return id, nil
	}

	return hl.fallback.Closest(lon, lat)
}

/*
safeRing ring terkecil r sehingga semua vertex di luar disk(r) pasti lebih jauh dari dist.
jarak pusat cell di ring r+1 ke pusat origin >= 1.5*(r+1)*edge, query & vertex masing-masing
paling jauh satu edge dari pusat cell nya.
*/
func (hl *H3Locator) safeRing(origin h3.Cell, dist float64) int {
	areaKm2 := h3.CellAreaKm2(origin)
	edgeKm := math.Sqrt(2 * areaKm2 / (3 * math.Sqrt(3)))
	edge := edgeKm * 1000 / 1609.344
	maxEdge := edge * h3DistortionFactor
	minEdge := edge / h3DistortionFactor

	return int(math.Floor((dist + 2*maxEdge) / (1.5 * minEdge)))
}

func (hl *H3Locator) hasCandidate(cells []h3.Cell) bool {
	for _, c := range cells {
		if len(hl.cells[c]) > 0 {
			return true
		}
	}
	return false
}

func (hl *H3Locator) closestIn(cells []h3.Cell, lon, lat float64) (int64, float64) {
	bestID := int64(-1)
	bestDist := math.Inf(1)
	bestOrder := math.MaxInt
	for _, c := range cells {
		for _, id := range hl.cells[c] {
			dist := geo.Distance(lon, lat, hl.graph.Lon(id), hl.graph.Lat(id))
			order := hl.order[id]
			if dist < bestDist || (dist == bestDist && order < bestOrder) {
				bestDist = dist
				bestID = id
				bestOrder = order
			}
		}
	}
	return bestID, bestDist
}
