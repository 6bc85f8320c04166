package routeplanner

import "errors"

var (
	// ErrInvalidRequest means the start or goal index is out of range for
	// the supplied graph.
	ErrInvalidRequest = errors.New("invalid route request")

	// ErrNoRouteFound means the frontier was exhausted before reaching the
	// goal: no path exists given the current topology and active scorers.
	ErrNoRouteFound = errors.New("no valid route found")

	// ErrIterationLimitExceeded means the search was aborted by the
	// configured effort cap before resolving. The goal may still be
	// reachable, retrying with a larger cap is the caller's call.
	ErrIterationLimitExceeded = errors.New("route search iteration limit exceeded")
)
