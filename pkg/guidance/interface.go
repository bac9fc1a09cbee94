package guidance

type Graph interface {
	WayName(id1, id2 int64) string
	Lon(id int64) float64
	Lat(id int64) float64
}
