package geo

import (
	"math"
	"testing"

	"routekit/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestProjectPointToLine(t *testing.T) {
	a := datastructure.NewCoordinate(-7.5500, 110.8000)
	b := datastructure.NewCoordinate(-7.5500, 110.8100)
	p := datastructure.NewCoordinate(-7.5510, 110.8050)

	proj := ProjectPointToLine(a, b, p)
	assert.InDelta(t, -7.5500, proj.Lat, 1e-4)
	assert.InDelta(t, 110.8050, proj.Lon, 1e-4)
}

func TestPointLinePerpendicularDistanceOnLine(t *testing.T) {
	a := datastructure.NewCoordinate(-7.5500, 110.8000)
	b := datastructure.NewCoordinate(-7.5500, 110.8100)

	dist := PointLinePerpendicularDistance(a, b, datastructure.NewCoordinate(-7.5500, 110.8050))
	assert.Less(t, dist, 1.0) // point already lies on the segment
}

func TestS2DistanceMatchesHaversine(t *testing.T) {
	s2Dist := S2DistanceMeter(-7.5500, 110.8000, -7.5600, 110.8100)
	havDist := HaversineDistanceMeter(-7.5500, 110.8000, -7.5600, 110.8100)
	if math.Abs(s2Dist-havDist) > havDist*0.01 {
		t.Errorf("s2 and haversine disagree: %f vs %f", s2Dist, havDist)
	}
}
