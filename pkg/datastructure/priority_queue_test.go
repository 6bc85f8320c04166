package datastructure

import (
	"testing"

	"golang.org/x/exp/rand"
)

func generateRandomInteger(min int, max int) int {

	return min + rand.Intn(max-min)
}

func TestPriorityQueue(t *testing.T) {
	pq := NewMinHeap[int32]()
	if pq == nil {
		t.Errorf("PriorityQueue is nil")
	}

	for i := 0; i < 10000; i++ {
		item := PriorityQueueNode[int32]{Rank: float64(generateRandomInteger(0, 10000)), Item: int32(i)}
		pq.Insert(item)
	}

	prevItem, ok := pq.ExtractMin()
	if !ok {
		t.Errorf("Error extract min")
	}
	for i := 1; i < 10000; i++ {
		item, ok := pq.ExtractMin()
		if !ok {
			t.Errorf("Error extract min")
		}

		if prevItem.Rank > item.Rank {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}
}

func TestPriorityQueueDuplicateItems(t *testing.T) {
	// the planner reinserts the same node on every relaxation, the heap must
	// keep every copy ordered
	pq := NewMinHeap[int32]()

	for i := 0; i < 1000; i++ {
		pq.Insert(PriorityQueueNode[int32]{Rank: float64(generateRandomInteger(0, 100)), Item: 42})
	}
	if pq.Size() != 1000 {
		t.Errorf("expected 1000 entries, got %d", pq.Size())
	}

	prevItem, _ := pq.ExtractMin()
	for pq.Size() > 0 {
		item, _ := pq.ExtractMin()
		if prevItem.Rank > item.Rank {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}
}

func TestPriorityQueueClear(t *testing.T) {
	pq := NewMinHeap[int32]()
	for i := 0; i < 100; i++ {
		pq.Insert(PriorityQueueNode[int32]{Rank: float64(i), Item: int32(i)})
	}
	pq.Clear()
	if pq.Size() != 0 {
		t.Errorf("expected empty queue after Clear, got %d entries", pq.Size())
	}
	if _, ok := pq.ExtractMin(); ok {
		t.Errorf("ExtractMin on cleared queue must report empty")
	}
}
