package guidance

import "github.com/lintang-b-s/osmroute/pkg/geo"

/*
ConvertBearingToDirection. klasifikasi relative bearing (derajat, negatif = kiri) ke sign belokan:

	r < -100          sharp left
	-100 <= r < -30   left
	-30 <= r < -15    slight left
	-15 <= r < 15     straight
	15 <= r < 30      slight right
	30 <= r < 100     right
	r >= 100          sharp right
*/
func ConvertBearingToDirection(relativeBearing float64) int {
	switch {
	case relativeBearing < -100:
		return TURN_SHARP_LEFT
	case relativeBearing < -30:
		return TURN_LEFT
	case relativeBearing < -15:
		return TURN_SLIGHT_LEFT
	case relativeBearing < 15:
		return CONTINUE_ON_STREET
	case relativeBearing < 30:
		return TURN_SLIGHT_RIGHT
	case relativeBearing < 100:
		return TURN_RIGHT
	default:
		return TURN_SHARP_RIGHT
	}
}

// turnAngle relative bearing di node route[i], antara edge (i-1, i) dan edge (i, i+1).
func turnAngle(g Graph, route []int64, i int) float64 {
	prev, base, next := route[i-1], route[i], route[i+1]
	prevBearing := geo.Bearing(g.Lon(prev), g.Lat(prev), g.Lon(base), g.Lat(base))
	curBearing := geo.Bearing(g.Lon(base), g.Lat(base), g.Lon(next), g.Lat(next))
	return geo.RelativeBearing(prevBearing, curBearing)
}

func edgeDistance(g Graph, from, to int64) float64 {
	return geo.Distance(g.Lon(from), g.Lat(from), g.Lon(to), g.Lat(to))
}
