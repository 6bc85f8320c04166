package routeplanner

import "routekit/pkg/datastructure"

// EdgeScorer is the planner's view of the cost-scoring chain. Score returns
// the non-negative traversal cost of an edge, or valid=false when the edge
// must be skipped for this search.
type EdgeScorer interface {
	Score(edge *datastructure.Edge) (valid bool, cost float64)
}
