package scorer

import (
	"fmt"

	"routekit/pkg/datastructure"
)

// EdgeScorer is the only boundary a cost criterion has to satisfy. Score
// either returns a non-negative traversal cost for the edge, or valid=false
// to veto the edge for this search entirely. Implementations must be
// stateless or configuration-only and never mutate graph or edge state.
type EdgeScorer interface {
	Score(edge *datastructure.Edge) (valid bool, cost float64)
	Name() string
}

type Aggregation int

const (
	AggregationSum Aggregation = iota
	AggregationMax
	AggregationWeightedSum
)

func ParseAggregation(s string) (Aggregation, error) {
	switch s {
	case "", "sum":
		return AggregationSum, nil
	case "max":
		return AggregationMax, nil
	case "weighted_sum":
		return AggregationWeightedSum, nil
	default:
		return 0, fmt.Errorf("unknown aggregation mode %q", s)
	}
}

// Chain evaluates an ordered list of scorers against one edge and folds
// their contributions with the configured aggregation rule. A veto from any
// scorer invalidates the edge regardless of the others. Negative scorer
// outputs are a contract violation and get clamped to zero here, so the
// search loop downstream can rely on non-negative costs.
type Chain struct {
	scorers []EdgeScorer
	weights []float64
	agg     Aggregation
}

func NewChain(agg Aggregation, scorers ...EdgeScorer) *Chain {
	weights := make([]float64, len(scorers))
	for i := range weights {
		weights[i] = 1.0
	}
	return &Chain{scorers: scorers, weights: weights, agg: agg}
}

// NewWeightedChain builds an AggregationWeightedSum chain. weights must
// pair up with scorers.
func NewWeightedChain(scorers []EdgeScorer, weights []float64) (*Chain, error) {
	if len(scorers) != len(weights) {
		return nil, fmt.Errorf("got %d scorers but %d weights", len(scorers), len(weights))
	}
	return &Chain{scorers: scorers, weights: weights, agg: AggregationWeightedSum}, nil
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Size() int { return len(c.scorers) }

func (c *Chain) Score(edge *datastructure.Edge) (bool, float64) {
	var total float64
	for i, s := range c.scorers {
		valid, cost := s.Score(edge)
		if !valid {
			return false, 0
		}
		if cost < 0 {
			cost = 0
		}
		switch c.agg {
		case AggregationMax:
			if cost > total {
				total = cost
			}
		case AggregationWeightedSum:
			total += c.weights[i] * cost
		default:
			total += cost
		}
	}
	return true, total
}
