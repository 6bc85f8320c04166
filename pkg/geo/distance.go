package geo

import "math"

const earthRadiusM = 6371007.0

// HaversineDistanceMeter returns the great-circle distance between two
// coordinates in meters, the unit edge lengths are stored in.
func HaversineDistanceMeter(latOne, lonOne, latTwo, lonTwo float64) float64 {
	phiOne := latOne * math.Pi / 180
	phiTwo := latTwo * math.Pi / 180
	dPhi := (latTwo - latOne) * math.Pi / 180
	dLambda := (lonTwo - lonOne) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phiOne)*math.Cos(phiTwo)*sinLambda*sinLambda
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
