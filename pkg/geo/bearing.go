package geo

import "math"

// Bearing initial bearing (derajat) dari titik 1 ke titik 2, range (-180, 180].
// bearing(p,q) != -bearing(q,p) secara umum.
func Bearing(lonOne, latOne, lonTwo, latTwo float64) float64 {
	phi1 := degreeToRadians(latOne)
	phi2 := degreeToRadians(latTwo)
	dlambda := degreeToRadians(lonTwo - lonOne)

	y := math.Sin(dlambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dlambda)
	return normalizeDegree(radiansToDegree(math.Atan2(y, x)))
}

// RelativeBearing selisih bearing cur - prev, dinormalisasi ke (-180, 180]. negatif = belok kiri.
func RelativeBearing(prevBearing, curBearing float64) float64 {
	return normalizeDegree(curBearing - prevBearing)
}

func normalizeDegree(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}
