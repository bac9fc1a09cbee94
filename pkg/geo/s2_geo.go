package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

const (
	milesPerDegreeLat = 69.0
)

// Coverage bounding rect road network + margin. query di luar rect ini tidak dilayani.
type Coverage struct {
	rect s2.Rect
}

func NewCoverage(southWest, northEast datastructure.Coordinate, marginMiles float64) Coverage {
	marginDeg := marginMiles / milesPerDegreeLat

	lo := s2.LatLngFromDegrees(math.Max(southWest.Lat-marginDeg, -90), math.Max(southWest.Lon-marginDeg, -180))
	hi := s2.LatLngFromDegrees(math.Min(northEast.Lat+marginDeg, 90), math.Min(northEast.Lon+marginDeg, 180))
	rect := s2.RectFromLatLng(lo).AddPoint(hi)
	return Coverage{rect: rect}
}

func (c Coverage) Contains(lat, lon float64) bool {
	return c.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}

func (c Coverage) SouthWest() datastructure.Coordinate {
	lo := c.rect.Lo()
	return datastructure.NewCoordinate(lo.Lat.Degrees(), lo.Lng.Degrees())
}

func (c Coverage) NorthEast() datastructure.Coordinate {
	hi := c.rect.Hi()
	return datastructure.NewCoordinate(hi.Lat.Degrees(), hi.Lng.Degrees())
}

// PointLinePerpendicularDistance jarak (miles) titik p ke segment a-b di permukaan bumi.
func PointLinePerpendicularDistance(a, b, p datastructure.Coordinate) float64 {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))

	angle := s2.DistanceFromSegment(pS2, aS2, bS2)
	return angle.Radians() * earthRadiusMiles
}
