package geo

import "routekit/pkg/datastructure"

// SimplifyPath reduces a route geometry with Douglas-Peucker: a point
// survives when it lies more than thresholdMeter from the chord between
// the endpoints of its segment. thresholdMeter <= 0 disables
// simplification and returns the input unchanged.
func SimplifyPath(coords []datastructure.Coordinate, thresholdMeter float64) []datastructure.Coordinate {
	if thresholdMeter <= 0 || len(coords) < 3 {
		return coords
	}

	keep := make([]bool, len(coords))
	keep[0] = true
	keep[len(coords)-1] = true
	simplifySegment(coords, 0, len(coords)-1, thresholdMeter, keep)

	out := make([]datastructure.Coordinate, 0, len(coords))
	for i, kept := range keep {
		if kept {
			out = append(out, coords[i])
		}
	}
	return out
}

func simplifySegment(coords []datastructure.Coordinate, left, right int, thresholdMeter float64, keep []bool) {
	if right-left < 2 {
		return
	}

	farthest := -1
	maxDist := thresholdMeter
	for i := left + 1; i < right; i++ {
		dist := PointLinePerpendicularDistance(coords[left], coords[right], coords[i])
		if dist > maxDist {
			maxDist = dist
			farthest = i
		}
	}
	if farthest < 0 {
		return
	}

	keep[farthest] = true
	simplifySegment(coords, left, farthest, thresholdMeter, keep)
	simplifySegment(coords, farthest, right, thresholdMeter, keep)
}
