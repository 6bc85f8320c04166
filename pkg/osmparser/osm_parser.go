package osmparser

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"routekit/pkg/datastructure"
	"routekit/pkg/geo"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

var skipHighway = map[string]struct{}{
	"footway":      {},
	"construction": {},
	"cycleway":     {},
	"path":         {},
	"pedestrian":   {},
	"busway":       {},
	"steps":        {},
	"bridleway":    {},
	"corridor":     {},
	"platform":     {},
	"proposed":     {},
	"track":        {},
	"bus_guideway": {},
	"elevator":     {},
}

type nodeCoord struct {
	lat float64
	lon float64
}

type wayData struct {
	nodeIDs []int64
	class   string
	speed   float64
	oneway  int // 0 both, 1 forward, -1 reversed
}

// OsmParser builds a navigation graph from an .osm.pbf extract. Way nodes
// shared between accepted ways (and way endpoints) become graph nodes, the
// nodes in between become edge geometry.
type OsmParser struct {
	wayNodeUsage map[int64]int
	nodeCoords   map[int64]nodeCoord
	nodeIDMap    map[int64]int32
	ways         []wayData
}

func NewOsmParser() *OsmParser {
	return &OsmParser{
		wayNodeUsage: make(map[int64]int),
		nodeCoords:   make(map[int64]nodeCoord),
		nodeIDMap:    make(map[int64]int32),
	}
}

// Parse scans mapFile twice: once for routable ways, once for the
// coordinates of the nodes those ways reference, then assembles the graph.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*datastructure.Graph, error) {
	log.Printf("scanning ways from %s ...", mapFile)
	if err := p.scanWays(ctx, mapFile); err != nil {
		return nil, err
	}
	log.Printf("accepted %d routable ways", len(p.ways))

	log.Printf("scanning node coordinates from %s ...", mapFile)
	if err := p.scanNodes(ctx, mapFile); err != nil {
		return nil, err
	}

	return p.buildGraph()
}

func (p *OsmParser) scanWays(ctx context.Context, mapFile string) error {
	f, err := os.Open(mapFile)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 4)
	defer scanner.Close()

	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}

		highway := way.Tags.Find("highway")
		if highway == "" {
			continue
		}
		if _, skip := skipHighway[highway]; skip {
			continue
		}
		if len(way.Nodes) < 2 {
			continue
		}

		nodeIDs := make([]int64, 0, len(way.Nodes))
		for _, wn := range way.Nodes {
			nodeIDs = append(nodeIDs, int64(wn.ID))
		}
		for _, id := range nodeIDs {
			p.wayNodeUsage[id]++
		}
		// endpoints are always graph nodes
		p.wayNodeUsage[nodeIDs[0]]++
		p.wayNodeUsage[nodeIDs[len(nodeIDs)-1]]++

		p.ways = append(p.ways, wayData{
			nodeIDs: nodeIDs,
			class:   highway,
			speed:   parseMaxSpeed(way.Tags.Find("maxspeed")),
			oneway:  parseOneway(way.Tags),
		})
	}
	return scanner.Err()
}

func (p *OsmParser) scanNodes(ctx context.Context, mapFile string) error {
	f, err := os.Open(mapFile)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 4)
	defer scanner.Close()

	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, used := p.wayNodeUsage[int64(node.ID)]; used {
			p.nodeCoords[int64(node.ID)] = nodeCoord{lat: node.Lat, lon: node.Lon}
		}
	}
	return scanner.Err()
}

func (p *OsmParser) buildGraph() (*datastructure.Graph, error) {
	g := datastructure.NewGraph()

	for _, way := range p.ways {
		if err := p.addWaySegments(g, way); err != nil {
			return nil, err
		}
	}

	log.Printf("graph built: %d nodes, %d edges", g.NumNodes(), g.NumEdges())
	return g, nil
}

// addWaySegments splits one way at its intersection nodes and inserts each
// piece as an edge (or an edge pair for two-way roads). Non-intersection
// nodes along the piece become the edge geometry.
func (p *OsmParser) addWaySegments(g *datastructure.Graph, way wayData) error {
	nodeIDs := way.nodeIDs
	if way.oneway == -1 {
		reversed := make([]int64, len(nodeIDs))
		for i, id := range nodeIDs {
			reversed[len(nodeIDs)-1-i] = id
		}
		nodeIDs = reversed
	}

	segStart := 0
	for i := 1; i < len(nodeIDs); i++ {
		isIntersection := p.wayNodeUsage[nodeIDs[i]] > 1
		if !isIntersection && i != len(nodeIDs)-1 {
			continue
		}

		fromOsm, toOsm := nodeIDs[segStart], nodeIDs[i]
		fromCoord, okFrom := p.nodeCoords[fromOsm]
		toCoord, okTo := p.nodeCoords[toOsm]
		if !okFrom || !okTo {
			// extract boundary cut the way, skip the dangling piece
			segStart = i
			continue
		}

		length := 0.0
		geometry := make([]datastructure.Coordinate, 0)
		prev := fromCoord
		complete := true
		for j := segStart + 1; j <= i; j++ {
			coord, ok := p.nodeCoords[nodeIDs[j]]
			if !ok {
				complete = false
				break
			}
			length += geo.HaversineDistanceMeter(prev.lat, prev.lon, coord.lat, coord.lon)
			if j < i {
				geometry = append(geometry, datastructure.NewCoordinate(coord.lat, coord.lon))
			}
			prev = coord
		}
		if !complete {
			segStart = i
			continue
		}

		from := p.graphNode(g, fromOsm, fromCoord)
		to := p.graphNode(g, toOsm, toCoord)
		if from == to {
			segStart = i
			continue
		}

		edge, err := g.AddEdge(from, to, length, way.speed, way.class, 0)
		if err != nil {
			return fmt.Errorf("way segment %d->%d: %w", fromOsm, toOsm, err)
		}
		edge.PointsInBetween = geometry

		if way.oneway == 0 {
			back, err := g.AddEdge(to, from, length, way.speed, way.class, 0)
			if err != nil {
				return fmt.Errorf("way segment %d->%d: %w", toOsm, fromOsm, err)
			}
			backGeometry := make([]datastructure.Coordinate, 0, len(geometry))
			for k := len(geometry) - 1; k >= 0; k-- {
				backGeometry = append(backGeometry, geometry[k])
			}
			back.PointsInBetween = backGeometry
		}

		segStart = i
	}
	return nil
}

func (p *OsmParser) graphNode(g *datastructure.Graph, osmID int64, coord nodeCoord) int32 {
	if id, ok := p.nodeIDMap[osmID]; ok {
		return id
	}
	id := g.AddNode(coord.lat, coord.lon)
	p.nodeIDMap[osmID] = id
	return id
}

func parseOneway(tags osm.Tags) int {
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return 1
	case "-1", "reverse":
		return -1
	}
	if tags.Find("junction") == "roundabout" {
		return 1
	}
	return 0
}

func parseMaxSpeed(v string) float64 {
	if v == "" {
		return 0
	}
	v = strings.TrimSpace(strings.TrimSuffix(v, "km/h"))
	speed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return speed
}
