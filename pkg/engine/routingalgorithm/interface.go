package routingalgorithm

type Graph interface {
	Adjacent(id int64) []int64
	Lon(id int64) float64
	Lat(id int64) float64
	IsVertex(id int64) bool
}
