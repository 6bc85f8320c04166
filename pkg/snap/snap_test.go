package snap

import (
	"errors"
	"testing"

	"routekit/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapToNode(t *testing.T) {
	g := datastructure.NewGraph()
	a := g.AddNode(-7.5500, 110.8000)
	b := g.AddNode(-7.5600, 110.8100)
	_ = g.AddNode(-7.5700, 110.8200)

	snapper := NewNodeSnapper(g, 500)

	// right next to node a
	id, err := snapper.SnapToNode(-7.5501, 110.8001)
	require.NoError(t, err)
	assert.Equal(t, a, id)

	// closer to b than to its neighbours
	id, err = snapper.SnapToNode(-7.5601, 110.8099)
	require.NoError(t, err)
	assert.Equal(t, b, id)
}

func TestSnapToNodeOutOfRadius(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(-7.5500, 110.8000)

	snapper := NewNodeSnapper(g, 500)

	// Berlin is a bit more than 500m from Surakarta
	_, err := snapper.SnapToNode(52.5200, 13.4050)
	assert.True(t, errors.Is(err, ErrNoNearbyNode))
}
