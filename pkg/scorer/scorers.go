package scorer

import (
	"routekit/pkg/datastructure"
)

// DistanceScorer costs an edge by its length in meters.
type DistanceScorer struct{}

func NewDistanceScorer() *DistanceScorer { return &DistanceScorer{} }

func (d *DistanceScorer) Name() string { return "distance" }

func (d *DistanceScorer) Score(edge *datastructure.Edge) (bool, float64) {
	return true, edge.Length
}

// TravelTimeScorer costs an edge by its expected traversal time in minutes.
// Edges without a tagged speed fall back to the class maximum, then to
// DefaultSpeed.
type TravelTimeScorer struct {
	DefaultSpeed float64 // km/h
}

func NewTravelTimeScorer(defaultSpeed float64) *TravelTimeScorer {
	if defaultSpeed <= 0 {
		defaultSpeed = 40.0
	}
	return &TravelTimeScorer{DefaultSpeed: defaultSpeed}
}

func (t *TravelTimeScorer) Name() string { return "traveltime" }

func (t *TravelTimeScorer) Score(edge *datastructure.Edge) (bool, float64) {
	speed := edge.Speed
	if speed <= 0 && edge.Class != "" {
		speed = datastructure.RoadClassMaxSpeed(edge.Class)
	}
	if speed <= 0 {
		speed = t.DefaultSpeed
	}
	eta := (edge.Length / 1000.0) / speed // hours
	return true, eta * 60                 // minutes
}

// PenaltyScorer surfaces the static per-edge penalty attribute.
type PenaltyScorer struct{}

func NewPenaltyScorer() *PenaltyScorer { return &PenaltyScorer{} }

func (p *PenaltyScorer) Name() string { return "penalty" }

func (p *PenaltyScorer) Score(edge *datastructure.Edge) (bool, float64) {
	return true, edge.Penalty
}

// RoadClassScorer vetoes edges whose class is in the deny set and adds a
// configured flat cost for the rest.
type RoadClassScorer struct {
	deny      map[string]struct{}
	extraCost map[string]float64
}

func NewRoadClassScorer(deny []string, extraCost map[string]float64) *RoadClassScorer {
	denySet := make(map[string]struct{}, len(deny))
	for _, class := range deny {
		denySet[class] = struct{}{}
	}
	return &RoadClassScorer{deny: denySet, extraCost: extraCost}
}

func (r *RoadClassScorer) Name() string { return "roadclass" }

func (r *RoadClassScorer) Score(edge *datastructure.Edge) (bool, float64) {
	if _, denied := r.deny[edge.Class]; denied {
		return false, 0
	}
	return true, r.extraCost[edge.Class]
}

// ClosureScorer vetoes edges currently present in the closure store. The
// store is external read-only context from the scorer's point of view and
// may be updated concurrently by the service layer between searches.
type ClosureScorer struct {
	store *ClosureStore
}

func NewClosureScorer(store *ClosureStore) *ClosureScorer {
	return &ClosureScorer{store: store}
}

func (c *ClosureScorer) Name() string { return "closure" }

func (c *ClosureScorer) Score(edge *datastructure.Edge) (bool, float64) {
	if c.store.IsClosed(edge.EdgeID) {
		return false, 0
	}
	return true, 0
}
