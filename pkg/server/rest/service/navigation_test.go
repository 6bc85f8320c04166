package service

import (
	"context"
	"testing"

	"routekit/pkg/datastructure"
	"routekit/pkg/routeplanner"
	"routekit/pkg/scorer"
	"routekit/pkg/snap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lengthScorer struct{}

func (lengthScorer) Score(edge *datastructure.Edge) (bool, float64) {
	return true, edge.Length
}

func buildServiceFixture(t *testing.T) (*NavigationService, *scorer.ClosureStore) {
	t.Helper()
	g := datastructure.NewGraph()
	a := g.AddNode(-7.5500, 110.8000)
	b := g.AddNode(-7.5510, 110.8010)
	c := g.AddNode(-7.5520, 110.8020)
	require.NoError(t, g.AddBidirectionalEdge(a, b, 150, 30, "residential", 0))
	require.NoError(t, g.AddBidirectionalEdge(b, c, 170, 30, "residential", 0))

	closures := scorer.NewClosureStore()
	chain := scorer.NewChain(scorer.AggregationSum, scorer.NewDistanceScorer(), scorer.NewClosureScorer(closures))
	planner := routeplanner.NewRoutePlanner(0, chain)
	snapper := snap.NewNodeSnapper(g, 500)

	return NewNavigationService(g, planner, snapper, closures, 7), closures
}

func TestRouteBetweenCoordinates(t *testing.T) {
	svc, _ := buildServiceFixture(t)

	summary, err := svc.RouteBetweenCoordinates(context.Background(), -7.5500, 110.8000, -7.5520, 110.8020)
	require.NoError(t, err)

	assert.Equal(t, []int32{0, 1, 2}, summary.NodeIDs)
	assert.Equal(t, 320.0, summary.TotalCost)
	assert.Equal(t, 320.0, summary.DistMeter)
	assert.NotEmpty(t, summary.Polyline)
}

func TestRouteBetweenCoordinatesSnapFailure(t *testing.T) {
	svc, _ := buildServiceFixture(t)

	_, err := svc.RouteBetweenCoordinates(context.Background(), 52.5200, 13.4050, -7.5520, 110.8020)
	assert.ErrorIs(t, err, snap.ErrNoNearbyNode)
}

func TestClosureReroutesTraffic(t *testing.T) {
	svc, _ := buildServiceFixture(t)

	// close the only link between b and c, the route must now fail
	summary, err := svc.RouteBetweenNodes(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, summary.Edges, 2)
	svc.CloseEdge(summary.Edges[1].EdgeID)

	_, err = svc.RouteBetweenNodes(context.Background(), 0, 2)
	assert.ErrorIs(t, err, routeplanner.ErrNoRouteFound)

	svc.ReopenEdge(summary.Edges[1].EdgeID)
	_, err = svc.RouteBetweenNodes(context.Background(), 0, 2)
	assert.NoError(t, err)
	assert.Empty(t, svc.ClosedEdges())
}

func TestRouteGeometrySimplifyThreshold(t *testing.T) {
	g := datastructure.NewGraph()
	a := g.AddNode(-7.5500, 110.8000)
	b := g.AddNode(-7.5500, 110.8100)
	edge, err := g.AddEdge(a, b, 1100, 30, "residential", 0)
	require.NoError(t, err)
	edge.PointsInBetween = []datastructure.Coordinate{{Lat: -7.5500, Lon: 110.8050}}

	planner := routeplanner.NewRoutePlanner(0, lengthScorer{})
	closures := scorer.NewClosureStore()

	// threshold 0 keeps the full edge geometry
	raw := NewNavigationService(g, planner, nil, closures, 0)
	summary, err := raw.RouteBetweenNodes(context.Background(), a, b)
	require.NoError(t, err)
	full := summary.Polyline

	// the in-between point is collinear, a 7m threshold drops it
	simplified := NewNavigationService(g, planner, nil, closures, 7)
	summary, err = simplified.RouteBetweenNodes(context.Background(), a, b)
	require.NoError(t, err)

	assert.NotEqual(t, full, summary.Polyline)
	assert.Equal(t, datastructure.RenderPath([]datastructure.Coordinate{
		{Lat: -7.5500, Lon: 110.8000},
		{Lat: -7.5500, Lon: 110.8100},
	}), summary.Polyline)
}
