package geo

import (
	"testing"

	"routekit/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestSimplifyPathDropsNearCollinearPoints(t *testing.T) {
	line := []datastructure.Coordinate{
		{Lat: -7.5500, Lon: 110.8000},
		{Lat: -7.5500, Lon: 110.8050},
		{Lat: -7.5500, Lon: 110.8100},
	}

	simplified := SimplifyPath(line, 7)
	assert.Len(t, simplified, 2)
	assert.Equal(t, line[0], simplified[0])
	assert.Equal(t, line[2], simplified[1])
}

func TestSimplifyPathKeepsSpike(t *testing.T) {
	spike := []datastructure.Coordinate{
		{Lat: -7.5500, Lon: 110.8000},
		{Lat: -7.5520, Lon: 110.8050}, // ~220m off the chord
		{Lat: -7.5500, Lon: 110.8100},
	}

	simplified := SimplifyPath(spike, 7)
	assert.Len(t, simplified, 3)

	// a threshold above the spike height collapses it
	simplified = SimplifyPath(spike, 1000)
	assert.Len(t, simplified, 2)
}

func TestSimplifyPathDisabledThreshold(t *testing.T) {
	spike := []datastructure.Coordinate{
		{Lat: -7.5500, Lon: 110.8000},
		{Lat: -7.5500, Lon: 110.8050},
		{Lat: -7.5500, Lon: 110.8100},
	}

	assert.Equal(t, spike, SimplifyPath(spike, 0))
	assert.Equal(t, spike[:2], SimplifyPath(spike[:2], 7))
}
