package snap

import (
	"errors"
	"fmt"

	"routekit/pkg/datastructure"
	"routekit/pkg/geo"

	"github.com/dhconnelly/rtreego"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50

	// a leaf entry is a point, give it a tiny box
	pointTolerance = 1e-7
)

var ErrNoNearbyNode = errors.New("no graph node within snapping radius")

type nodeEntry struct {
	id  int32
	lat float64
	lon float64
}

func (n *nodeEntry) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(rtreego.Point{n.lat, n.lon}, []float64{pointTolerance, pointTolerance})
	return rect
}

// NodeSnapper resolves a world coordinate to the nearest graph node through
// an r-tree over all node positions. The r-tree nearest neighbour works in
// coordinate space, the final candidate is verified against maxRadiusMeter
// with a real spherical distance.
type NodeSnapper struct {
	tree           *rtreego.Rtree
	maxRadiusMeter float64
}

func NewNodeSnapper(g *datastructure.Graph, maxRadiusMeter float64) *NodeSnapper {
	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	for id := int32(0); int(id) < g.NumNodes(); id++ {
		n := g.GetNode(id)
		tree.Insert(&nodeEntry{id: n.ID, lat: n.Lat, lon: n.Lon})
	}
	return &NodeSnapper{tree: tree, maxRadiusMeter: maxRadiusMeter}
}

// SnapToNode returns the id of the graph node nearest to (lat, lon).
func (s *NodeSnapper) SnapToNode(lat, lon float64) (int32, error) {
	nearest := s.tree.NearestNeighbor(rtreego.Point{lat, lon})
	if nearest == nil {
		return 0, ErrNoNearbyNode
	}

	entry := nearest.(*nodeEntry)
	dist := geo.S2DistanceMeter(lat, lon, entry.lat, entry.lon)
	if dist > s.maxRadiusMeter {
		return 0, fmt.Errorf("%w: nearest node %d is %.0fm away (max %.0fm)",
			ErrNoNearbyNode, entry.id, dist, s.maxRadiusMeter)
	}
	return entry.id, nil
}
