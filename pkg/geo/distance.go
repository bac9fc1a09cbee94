package geo

import "math"

const (
	earthRadiusKM    = 6371.0
	earthRadiusMiles = 3963.0
	metersPerMile    = 1609.344
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func radiansToDegree(angle float64) float64 {
	return angle * (180.0 / math.Pi)
}

// CalculateHaversineDistance jarak great-circle dalam km.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

/*
Distance jarak great-circle (haversine) dalam miles, R = 3963 miles.

	a = sin²(Δφ/2) + cos φ1·cos φ2·sin²(Δλ/2)
	c = 2·atan2(√a, √(1-a))
*/
func Distance(lonOne, latOne, lonTwo, latTwo float64) float64 {
	phi1 := degreeToRadians(latOne)
	phi2 := degreeToRadians(latTwo)
	dphi := degreeToRadians(latTwo - latOne)
	dlambda := degreeToRadians(lonTwo - lonOne)

	sinDphi := math.Sin(dphi / 2.0)
	sinDlambda := math.Sin(dlambda / 2.0)
	a := sinDphi*sinDphi + math.Cos(phi1)*math.Cos(phi2)*sinDlambda*sinDlambda
	c := 2.0 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

func MilesToKM(miles float64) float64 {
	return miles * metersPerMile / 1000.0
}

func MetersToMiles(meters float64) float64 {
	return meters / metersPerMile
}
