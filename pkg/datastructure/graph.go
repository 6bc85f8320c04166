package datastructure

import (
	"fmt"
	"math"
)

// Edge is a directed road segment between two graph nodes. Static attributes
// only, the search never mutates an edge. A bidirectional road is stored as
// two paired edges.
type Edge struct {
	EdgeID  int32   `json:"edge_id"`
	From    int32   `json:"from"`
	To      int32   `json:"to"`
	Length  float64 `json:"length"`  // meter
	Speed   float64 `json:"speed"`   // km/h
	Class   string  `json:"class"`   // highway class, e.g. "residential"
	Penalty float64 `json:"penalty"` // static extra cost hint

	PointsInBetween []Coordinate `json:"-"` // edge geometry (non-intersection points)
}

// Node is a graph vertex. Created once at graph-load time and reused across
// searches. Visited/BestCost/ParentEdge are transient per-search state owned
// by the route planner, reset on every FindRoute call.
type Node struct {
	ID   int32
	Lat  float64
	Lon  float64
	Tags []string

	OutEdges []*Edge

	Visited    bool
	BestCost   float64
	ParentEdge *Edge
}

type Graph struct {
	nodes     []*Node
	edgeCount int32
}

func NewGraph() *Graph {
	return &Graph{}
}

// AddNode appends a node and returns its index. Indices are stable for the
// lifetime of the graph.
func (g *Graph) AddNode(lat, lon float64, tags ...string) int32 {
	id := int32(len(g.nodes))
	g.nodes = append(g.nodes, &Node{
		ID:       id,
		Lat:      lat,
		Lon:      lon,
		Tags:     tags,
		BestCost: math.Inf(1),
	})
	return id
}

// AddEdge inserts one directed edge from -> to. Endpoints must already exist.
func (g *Graph) AddEdge(from, to int32, length, speed float64, class string, penalty float64) (*Edge, error) {
	if !g.IsValidIndex(from) || !g.IsValidIndex(to) {
		return nil, fmt.Errorf("edge endpoints (%d, %d) out of range, graph has %d nodes", from, to, len(g.nodes))
	}
	edge := &Edge{
		EdgeID:  g.edgeCount,
		From:    from,
		To:      to,
		Length:  length,
		Speed:   speed,
		Class:   class,
		Penalty: penalty,
	}
	g.edgeCount++
	g.nodes[from].OutEdges = append(g.nodes[from].OutEdges, edge)
	return edge, nil
}

// AddBidirectionalEdge inserts the two paired directed edges of a two-way segment.
func (g *Graph) AddBidirectionalEdge(from, to int32, length, speed float64, class string, penalty float64) error {
	if _, err := g.AddEdge(from, to, length, speed, class, penalty); err != nil {
		return err
	}
	_, err := g.AddEdge(to, from, length, speed, class, penalty)
	return err
}

func (g *Graph) GetNode(id int32) *Node {
	return g.nodes[id]
}

func (g *Graph) GetOutEdges(id int32) []*Edge {
	return g.nodes[id].OutEdges
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumEdges() int {
	return int(g.edgeCount)
}

func (g *Graph) IsValidIndex(id int32) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// ResetSearchStates clears the transient per-search state on every node.
// Runs in O(node count) at the start of each search so that no state leaks
// between calls on the same graph instance.
func (g *Graph) ResetSearchStates() {
	for _, n := range g.nodes {
		n.Visited = false
		n.BestCost = math.Inf(1)
		n.ParentEdge = nil
	}
}

// Edges walks every edge in the graph in node order.
func (g *Graph) Edges(fn func(e *Edge)) {
	for _, n := range g.nodes {
		for _, e := range n.OutEdges {
			fn(e)
		}
	}
}

func RoadClassMaxSpeed(roadClass string) float64 {
	switch roadClass {
	case "motorway":
		return 95
	case "trunk":
		return 85
	case "primary":
		return 75
	case "secondary":
		return 65
	case "tertiary":
		return 50
	case "unclassified":
		return 50
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 90
	case "trunk_link":
		return 80
	case "primary_link":
		return 70
	case "secondary_link":
		return 60
	case "tertiary_link":
		return 50
	case "living_street":
		return 20
	default:
		return 40
	}
}
