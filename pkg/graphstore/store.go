package graphstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"routekit/pkg/concurrent"
	"routekit/pkg/datastructure"

	"github.com/dgraph-io/badger/v4"
	"github.com/uber/h3-go/v4"
)

const (
	nodesKey = "graph:nodes"
	edgesKey = "graph:edges"

	cellKeyPrefix  = "h3:"
	cellResolution = 9

	saveBatchSize = 1000
	saveWorkers   = 4
)

var ErrGraphNotFound = errors.New("graph not found in store")

// GraphStore persists a navigation graph in badger: one zstd-compressed
// blob for nodes, one for edges, plus h3 res-9 cell buckets mapping a cell
// to the node ids inside it for coarse coordinate lookup.
type GraphStore struct {
	db *badger.DB
}

func NewGraphStore(db *badger.DB) *GraphStore {
	return &GraphStore{db}
}

// SaveGraph writes the whole graph. Cell buckets are written in batches
// through a worker pool.
func (s *GraphStore) SaveGraph(ctx context.Context, g *datastructure.Graph) error {
	nodes := make([]nodeRecord, 0, g.NumNodes())
	cells := make(map[string][]int32)
	for id := int32(0); int(id) < g.NumNodes(); id++ {
		n := g.GetNode(id)
		nodes = append(nodes, nodeRecord{ID: n.ID, Lat: n.Lat, Lon: n.Lon, Tags: n.Tags})

		cell := h3.LatLngToCell(h3.NewLatLng(n.Lat, n.Lon), cellResolution)
		cells[cell.String()] = append(cells[cell.String()], n.ID)
	}

	edges := make([]edgeRecord, 0, g.NumEdges())
	g.Edges(func(e *datastructure.Edge) {
		edges = append(edges, edgeRecord{
			EdgeID:          e.EdgeID,
			From:            e.From,
			To:              e.To,
			Length:          e.Length,
			Speed:           e.Speed,
			Penalty:         e.Penalty,
			Class:           e.Class,
			PointsInBetween: e.PointsInBetween,
		})
	})

	nodesBlob, err := encodeNodes(nodes)
	if err != nil {
		return fmt.Errorf("encoding nodes: %w", err)
	}
	edgesBlob, err := encodeEdges(edges)
	if err != nil {
		return fmt.Errorf("encoding edges: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(nodesKey), nodesBlob); err != nil {
			return err
		}
		return txn.Set([]byte(edgesKey), edgesBlob)
	})
	if err != nil {
		return err
	}

	return s.saveCellBuckets(ctx, cells)
}

type saveCellJobItem struct {
	key     string
	nodeIDs []int32
}

func (s *GraphStore) saveCellBuckets(ctx context.Context, cells map[string][]int32) error {
	log.Printf("saving %d h3 cell buckets to the graph store...", len(cells))

	pool := concurrent.NewWorkerPool[[]saveCellJobItem, error](saveWorkers, 2*saveWorkers)

	go func() {
		batch := make([]saveCellJobItem, 0, saveBatchSize)
		jobID := 0
		for key, ids := range cells {
			batch = append(batch, saveCellJobItem{key: key, nodeIDs: ids})
			if len(batch) == saveBatchSize {
				pool.AddJob(concurrent.Job[[]saveCellJobItem]{ID: jobID, JobItem: batch})
				jobID++
				batch = make([]saveCellJobItem, 0, saveBatchSize)
			}
		}
		if len(batch) > 0 {
			pool.AddJob(concurrent.Job[[]saveCellJobItem]{ID: jobID, JobItem: batch})
		}
		pool.Close()
	}()

	pool.Start(ctx, func(batch []saveCellJobItem) error {
		return s.saveBatch(ctx, batch)
	})

	// drain every result so the producer and workers finish even on
	// failure, then report the first error
	var saveErr error
	for err := range pool.CollectResults() {
		if err != nil && saveErr == nil {
			saveErr = err
		}
	}
	if saveErr != nil {
		return saveErr
	}
	// a cancelled context makes the workers skip their batches without
	// emitting results, so an empty results channel is not success
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("saving cell buckets: %w", err)
	}
	log.Printf("saving h3 cell buckets done")
	return nil
}

func (s *GraphStore) saveBatch(ctx context.Context, batch []saveCellJobItem) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, item := range batch {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		val, err := encodeNodeIDs(item.nodeIDs)
		if err != nil {
			return err
		}
		if err := wb.Set([]byte(cellKeyPrefix+item.key), val); err != nil {
			return err
		}
	}

	return wb.Flush()
}

// LoadGraph rebuilds the persisted graph. Node and edge indices come back
// exactly as saved.
func (s *GraphStore) LoadGraph() (*datastructure.Graph, error) {
	nodesBlob, err := s.get([]byte(nodesKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrGraphNotFound
	}
	if err != nil {
		return nil, err
	}
	edgesBlob, err := s.get([]byte(edgesKey))
	if err != nil {
		return nil, err
	}

	nodes, err := decodeNodes(nodesBlob)
	if err != nil {
		return nil, fmt.Errorf("decoding nodes: %w", err)
	}
	edges, err := decodeEdges(edgesBlob)
	if err != nil {
		return nil, fmt.Errorf("decoding edges: %w", err)
	}

	// AddNode/AddEdge assign ids sequentially, replay in the original order
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	sort.Slice(edges, func(i, j int) bool { return edges[i].EdgeID < edges[j].EdgeID })

	g := datastructure.NewGraph()
	for _, n := range nodes {
		g.AddNode(n.Lat, n.Lon, n.Tags...)
	}
	for _, e := range edges {
		inserted, err := g.AddEdge(e.From, e.To, e.Length, e.Speed, e.Class, e.Penalty)
		if err != nil {
			return nil, err
		}
		inserted.PointsInBetween = e.PointsInBetween
	}
	return g, nil
}

// NodesInCell returns the node ids stored in the h3 cell containing
// (lat, lon). A cell with no nodes is not an error, just empty.
func (s *GraphStore) NodesInCell(lat, lon float64) ([]int32, error) {
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), cellResolution)

	val, err := s.get([]byte(cellKeyPrefix + cell.String()))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeNodeIDs(val)
}

func (s *GraphStore) get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}
