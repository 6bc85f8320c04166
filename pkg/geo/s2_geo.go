package geo

import (
	"routekit/pkg/datastructure"

	"github.com/golang/geo/s2"
)

// ProjectPointToLine projects p onto the segment (a, b) on the sphere.
func ProjectPointToLine(a, b, p datastructure.Coordinate) datastructure.Coordinate {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
	projection := s2.Project(pS2, aS2, bS2)
	projLatLng := s2.LatLngFromPoint(projection)
	return datastructure.Coordinate{Lat: projLatLng.Lat.Degrees(), Lon: projLatLng.Lng.Degrees()}
}

// PointLinePerpendicularDistance is the distance in meters from p to its
// projection on the segment (a, b).
func PointLinePerpendicularDistance(a, b, p datastructure.Coordinate) float64 {
	proj := ProjectPointToLine(a, b, p)
	return s2.LatLngFromDegrees(p.Lat, p.Lon).Distance(s2.LatLngFromDegrees(proj.Lat, proj.Lon)).Radians() * earthRadiusM
}

// S2DistanceMeter is the angular distance between two coordinates in meters.
func S2DistanceMeter(latOne, lonOne, latTwo, lonTwo float64) float64 {
	return s2.LatLngFromDegrees(latOne, lonOne).Distance(s2.LatLngFromDegrees(latTwo, lonTwo)).Radians() * earthRadiusM
}
