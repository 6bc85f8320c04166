package routeplanner

import (
	"fmt"

	"routekit/pkg/datastructure"
	"routekit/pkg/util"
)

type nodeElement = datastructure.PriorityQueueNode[*datastructure.Node]

// defaultScorer is used when no scorer chain is configured: plain
// distance-weighted search.
type defaultScorer struct{}

func (defaultScorer) Score(edge *datastructure.Edge) (bool, float64) {
	return true, edge.Length
}

// RoutePlanner computes an optimal route between two node indices of a
// static navigation graph with a best-first shortest-path search. Edge costs
// come from the configured scorer chain, and total search effort is bounded
// by maxIterations for use inside a latency-bounded control loop.
//
// A planner instance embeds its open set and the graph embeds per-node
// search state, so one graph must only be searched by one call at a time.
// The service layer serializes calls with a mutex.
type RoutePlanner struct {
	maxIterations int
	goalID        int32
	queue         *datastructure.MinHeap[*datastructure.Node]
	edgeScorer    EdgeScorer
}

// NewRoutePlanner builds a planner. maxIterations == 0 means unbounded.
// A nil scorer falls back to plain distance costs.
func NewRoutePlanner(maxIterations int, edgeScorer EdgeScorer) *RoutePlanner {
	if edgeScorer == nil {
		edgeScorer = defaultScorer{}
	}
	return &RoutePlanner{
		maxIterations: maxIterations,
		queue:         datastructure.NewMinHeap[*datastructure.Node](),
		edgeScorer:    edgeScorer,
	}
}

// FindRoute finds the cheapest route from start to goal on graph.
// Failures are typed: ErrInvalidRequest for out-of-range indices,
// ErrNoRouteFound when the goal is unreachable, ErrIterationLimitExceeded
// when the effort cap aborted the search. No partial path is ever returned.
func (rp *RoutePlanner) FindRoute(graph *datastructure.Graph, start, goal int32) (datastructure.Route, error) {
	if !graph.IsValidIndex(start) || !graph.IsValidIndex(goal) {
		return datastructure.Route{}, fmt.Errorf("%w: start %d / goal %d out of range, graph has %d nodes",
			ErrInvalidRequest, start, goal, graph.NumNodes())
	}

	if start == goal {
		return datastructure.NewTrivialRoute(start), nil
	}

	if err := rp.findShortestGraphTraversal(graph, graph.GetNode(start), graph.GetNode(goal)); err != nil {
		return datastructure.Route{}, err
	}

	// backtrace parent links goal -> start, then flip into travel order
	goalNode := graph.GetNode(goal)
	edges := []*datastructure.Edge{}
	for n := goalNode; n.ParentEdge != nil; n = graph.GetNode(n.ParentEdge.From) {
		edges = append(edges, n.ParentEdge)
	}
	edges = util.ReverseG(edges)

	nodeIDs := make([]int32, 0, len(edges)+1)
	nodeIDs = append(nodeIDs, start)
	for _, e := range edges {
		nodeIDs = append(nodeIDs, e.To)
	}

	return datastructure.Route{
		Edges:     edges,
		NodeIDs:   nodeIDs,
		TotalCost: goalNode.BestCost,
		Found:     true,
	}, nil
}

// findShortestGraphTraversal is Dijkstra's algorithm with lazy queue
// invalidation: relaxations reinsert the target instead of decrease-key,
// stale entries get discarded at pop time.
func (rp *RoutePlanner) findShortestGraphTraversal(graph *datastructure.Graph, start, goal *datastructure.Node) error {
	rp.goalID = goal.ID
	graph.ResetSearchStates()
	rp.clearQueue()

	start.BestCost = 0
	rp.addNode(0, start)

	iterations := 0
	for rp.queue.Size() > 0 {
		if rp.maxIterations > 0 && iterations >= rp.maxIterations {
			return fmt.Errorf("%w: cap %d reached before goal %d",
				ErrIterationLimitExceeded, rp.maxIterations, goal.ID)
		}
		iterations++

		next, _ := rp.getNextNode()
		node := next.Item
		if node.Visited || next.Rank > node.BestCost {
			// stale duplicate left behind by a later relaxation
			continue
		}

		node.Visited = true
		if rp.isGoal(node) {
			return nil
		}

		for _, edge := range graph.GetOutEdges(node.ID) {
			valid, cost := rp.getTraversalCost(edge)
			if !valid {
				continue
			}

			target := graph.GetNode(edge.To)
			candidate := node.BestCost + cost
			if candidate < target.BestCost {
				target.BestCost = candidate
				target.ParentEdge = edge
				rp.addNode(candidate, target)
			}
		}
	}

	return fmt.Errorf("%w: frontier exhausted before goal %d", ErrNoRouteFound, goal.ID)
}

func (rp *RoutePlanner) getTraversalCost(edge *datastructure.Edge) (bool, float64) {
	return rp.edgeScorer.Score(edge)
}

func (rp *RoutePlanner) addNode(cost float64, node *datastructure.Node) {
	rp.queue.Insert(nodeElement{Rank: cost, Item: node})
}

func (rp *RoutePlanner) getNextNode() (nodeElement, bool) {
	return rp.queue.ExtractMin()
}

func (rp *RoutePlanner) clearQueue() {
	rp.queue.Clear()
}

func (rp *RoutePlanner) isGoal(node *datastructure.Node) bool {
	return node.ID == rp.goalID
}
