package osmparser

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaxSpeed(t *testing.T) {
	assert.Equal(t, 50.0, parseMaxSpeed("50"))
	assert.Equal(t, 30.0, parseMaxSpeed("30 km/h"))
	assert.Equal(t, 0.0, parseMaxSpeed(""))
	assert.Equal(t, 0.0, parseMaxSpeed("walk"))
}

func TestParseOneway(t *testing.T) {
	assert.Equal(t, 1, parseOneway(osm.Tags{{Key: "oneway", Value: "yes"}}))
	assert.Equal(t, -1, parseOneway(osm.Tags{{Key: "oneway", Value: "-1"}}))
	assert.Equal(t, 1, parseOneway(osm.Tags{{Key: "junction", Value: "roundabout"}}))
	assert.Equal(t, 0, parseOneway(osm.Tags{}))
}

func TestBuildGraphSplitsAtIntersections(t *testing.T) {
	// two ways crossing at osm node 3:
	//   way A: 1 - 2 - 3 - 4   (two-way residential)
	//   way B: 5 - 3 - 6       (oneway)
	p := NewOsmParser()
	p.nodeCoords = map[int64]nodeCoord{
		1: {lat: -7.5500, lon: 110.8000},
		2: {lat: -7.5500, lon: 110.8010},
		3: {lat: -7.5500, lon: 110.8020},
		4: {lat: -7.5500, lon: 110.8030},
		5: {lat: -7.5490, lon: 110.8020},
		6: {lat: -7.5510, lon: 110.8020},
	}
	p.ways = []wayData{
		{nodeIDs: []int64{1, 2, 3, 4}, class: "residential", oneway: 0},
		{nodeIDs: []int64{5, 3, 6}, class: "residential", oneway: 1},
	}
	for _, w := range p.ways {
		for _, id := range w.nodeIDs {
			p.wayNodeUsage[id]++
		}
		p.wayNodeUsage[w.nodeIDs[0]]++
		p.wayNodeUsage[w.nodeIDs[len(w.nodeIDs)-1]]++
	}

	g, err := p.buildGraph()
	require.NoError(t, err)

	// graph nodes: 1, 3, 4, 5, 6 (node 2 is geometry only)
	assert.Equal(t, 5, g.NumNodes())

	// way A: 1-3 and 3-4 both directions = 4 edges; way B: 5-3, 3-6 oneway = 2
	assert.Equal(t, 6, g.NumEdges())

	// the 1->3 edge carries node 2 as in-between geometry
	firstOut := g.GetOutEdges(0)
	require.NotEmpty(t, firstOut)
	assert.Len(t, firstOut[0].PointsInBetween, 1)
	assert.Greater(t, firstOut[0].Length, 0.0)
}
