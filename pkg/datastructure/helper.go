package datastructure

import (
	"github.com/twpayne/go-polyline"
)

// CreatePolyline encode path jadi google encoded polyline (lat, lon).
func CreatePolyline(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

type NodeCoordinates interface {
	Lat(id int64) float64
	Lon(id int64) float64
}

// RouteCoordinates koordinat setiap node di route.
func RouteCoordinates(g NodeCoordinates, route []int64) []Coordinate {
	coords := make([]Coordinate, 0, len(route))
	for _, id := range route {
		coords = append(coords, NewCoordinate(g.Lat(id), g.Lon(id)))
	}
	return coords
}
