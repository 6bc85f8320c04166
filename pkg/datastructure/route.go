package datastructure

// Route is the output artifact of one planner call: the ordered edge chain
// from start to goal plus the finalized total traversal cost. A failed search
// produces no Route at all (the planner returns a typed error instead), so a
// Route value always describes a complete start->goal path.
type Route struct {
	Edges     []*Edge
	NodeIDs   []int32
	TotalCost float64
	Found     bool
}

// NewTrivialRoute is the start == goal case: a single node, no edges, zero cost.
func NewTrivialRoute(nodeID int32) Route {
	return Route{
		NodeIDs:   []int32{nodeID},
		TotalCost: 0,
		Found:     true,
	}
}

// Coordinates returns the node coordinate sequence of the route on g,
// including every edge's in-between geometry points.
func (r *Route) Coordinates(g *Graph) []Coordinate {
	coords := make([]Coordinate, 0, len(r.NodeIDs))
	for i, id := range r.NodeIDs {
		n := g.GetNode(id)
		coords = append(coords, Coordinate{Lat: n.Lat, Lon: n.Lon})
		if i < len(r.Edges) {
			coords = append(coords, r.Edges[i].PointsInBetween...)
		}
	}
	return coords
}
