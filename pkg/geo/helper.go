package geo

import (
	"container/list"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

const (
	DefaultSimplifyToleranceMeters = 7.0
)

// https://cartography-playground.gitlab.io/playgrounds/douglas-peucker-algorithm/

// SimplifyRoute buang titik route yang jaraknya ke segment pengganti <= toleranceMeters.
// titik awal & akhir selalu disimpan. toleranceMeters <= 0 return coords apa adanya.
func SimplifyRoute(coords []datastructure.Coordinate, toleranceMeters float64) []datastructure.Coordinate {
	size := len(coords)
	if size < 3 || toleranceMeters <= 0 {
		return coords
	}

	kepts := make([]bool, size)
	kepts[0] = true
	kepts[size-1] = true

	tolerance := MetersToMiles(toleranceMeters)
	segments := list.New()
	segments.PushBack(routeSegment{0, size - 1})
	for segments.Len() > 0 {
		seg := segments.Remove(segments.Back()).(routeSegment)
		if seg.to-seg.from < 2 {
			continue
		}

		farthest, maxDist := seg.farthest(coords)
		if maxDist <= tolerance {
			continue
		}
		kepts[farthest] = true
		segments.PushBack(routeSegment{seg.from, farthest})
		segments.PushBack(routeSegment{farthest, seg.to})
	}

	simplified := make([]datastructure.Coordinate, 0, size)
	for i, keep := range kepts {
		if keep {
			simplified = append(simplified, coords[i])
		}
	}
	return simplified
}

type routeSegment struct {
	from, to int
}

// farthest index titik di antara from & to dengan jarak (miles) terbesar ke segment from-to.
func (s routeSegment) farthest(coords []datastructure.Coordinate) (int, float64) {
	idx, maxDist := s.from, 0.0
	for i := s.from + 1; i < s.to; i++ {
		if d := PointLinePerpendicularDistance(coords[s.from], coords[s.to], coords[i]); d > maxDist {
			idx, maxDist = i, d
		}
	}
	return idx, maxDist
}
