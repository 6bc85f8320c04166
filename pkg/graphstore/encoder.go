package graphstore

import (
	"routekit/pkg/datastructure"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// on-disk records, kept separate from the in-memory graph types so the
// transient search state never leaks into the store
type nodeRecord struct {
	ID   int32
	Lat  float64
	Lon  float64
	Tags []string
}

type edgeRecord struct {
	EdgeID          int32
	From            int32
	To              int32
	Length          float64
	Speed           float64
	Penalty         float64
	Class           string
	PointsInBetween []datastructure.Coordinate
}

func encodeNodes(nodes []nodeRecord) ([]byte, error) {
	encoded, err := binary.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func decodeNodes(bb []byte) ([]nodeRecord, error) {
	raw, err := decompress(bb)
	if err != nil {
		return nil, err
	}
	var nodes []nodeRecord
	if err := binary.Unmarshal(raw, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func encodeEdges(edges []edgeRecord) ([]byte, error) {
	encoded, err := binary.Marshal(edges)
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func decodeEdges(bb []byte) ([]edgeRecord, error) {
	raw, err := decompress(bb)
	if err != nil {
		return nil, err
	}
	var edges []edgeRecord
	if err := binary.Unmarshal(raw, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func encodeNodeIDs(ids []int32) ([]byte, error) {
	return binary.Marshal(ids)
}

func decodeNodeIDs(bb []byte) ([]int32, error) {
	var ids []int32
	if err := binary.Unmarshal(bb, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}
	return bb, nil
}
