package service

import (
	"context"
	"sync"

	"routekit/pkg/datastructure"
	"routekit/pkg/geo"
	"routekit/pkg/scorer"
	"routekit/pkg/util"
)

type RoutePlanner interface {
	FindRoute(graph *datastructure.Graph, start, goal int32) (datastructure.Route, error)
}

type NodeSnapper interface {
	SnapToNode(lat, lon float64) (int32, error)
}

// RouteSummary is what the REST layer renders: the route plus its encoded,
// simplified geometry.
type RouteSummary struct {
	NodeIDs   []int32
	Edges     []*datastructure.Edge
	TotalCost float64
	DistMeter float64
	Polyline  string
}

// NavigationService glues snapping, planning and closures together. The
// graph embeds per-search state, so planner calls are serialized with a
// mutex: one search per graph at a time.
type NavigationService struct {
	graph    *datastructure.Graph
	planner  RoutePlanner
	snapper  NodeSnapper
	closures *scorer.ClosureStore

	// simplifyThresholdMeter tunes geometry reduction before rendering,
	// 0 turns it off.
	simplifyThresholdMeter float64

	searchMu sync.Mutex
}

func NewNavigationService(graph *datastructure.Graph, planner RoutePlanner,
	snapper NodeSnapper, closures *scorer.ClosureStore, simplifyThresholdMeter float64) *NavigationService {
	return &NavigationService{
		graph:                  graph,
		planner:                planner,
		snapper:                snapper,
		closures:               closures,
		simplifyThresholdMeter: simplifyThresholdMeter,
	}
}

// RouteBetweenCoordinates snaps both ends to the road network and plans
// between the snapped nodes.
func (s *NavigationService) RouteBetweenCoordinates(ctx context.Context, srcLat, srcLon,
	dstLat, dstLon float64) (RouteSummary, error) {
	start, err := s.snapper.SnapToNode(srcLat, srcLon)
	if err != nil {
		return RouteSummary{}, err
	}
	goal, err := s.snapper.SnapToNode(dstLat, dstLon)
	if err != nil {
		return RouteSummary{}, err
	}
	return s.RouteBetweenNodes(ctx, start, goal)
}

func (s *NavigationService) RouteBetweenNodes(_ context.Context, start, goal int32) (RouteSummary, error) {
	s.searchMu.Lock()
	route, err := s.planner.FindRoute(s.graph, start, goal)
	s.searchMu.Unlock()
	if err != nil {
		return RouteSummary{}, err
	}

	dist := 0.0
	for _, e := range route.Edges {
		dist += e.Length
	}

	coords := route.Coordinates(s.graph)
	coords = geo.SimplifyPath(coords, s.simplifyThresholdMeter)

	return RouteSummary{
		NodeIDs:   route.NodeIDs,
		Edges:     route.Edges,
		TotalCost: route.TotalCost,
		DistMeter: util.RoundFloat(dist, 2),
		Polyline:  datastructure.RenderPath(coords),
	}, nil
}

func (s *NavigationService) CloseEdge(edgeID int32) {
	s.closures.Close(edgeID)
}

func (s *NavigationService) ReopenEdge(edgeID int32) {
	s.closures.Reopen(edgeID)
}

func (s *NavigationService) ClosedEdges() []int32 {
	return s.closures.ListClosed()
}
