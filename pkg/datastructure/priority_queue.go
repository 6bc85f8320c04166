package datastructure

// PriorityQueueNode is one frontier entry: a node (or any item) keyed by its
// cumulative cost rank.
type PriorityQueueNode[T any] struct {
	Rank float64
	Item T
}

// MinHeap is a binary min-heap ordered by Rank. Duplicate entries for the
// same item are allowed: the route planner reinserts a node on every
// relaxation and discards stale entries at pop time instead of doing a true
// decrease-key. Ties are broken arbitrarily.
type MinHeap[T any] struct {
	heap []PriorityQueueNode[T]
}

func NewMinHeap[T any]() *MinHeap[T] {
	return &MinHeap[T]{}
}

func (pq *MinHeap[T]) Size() int {
	return len(pq.heap)
}

// Clear purges all entries. Called at the start of every search so that a
// prior, possibly aborted, run leaves nothing behind.
func (pq *MinHeap[T]) Clear() {
	pq.heap = pq.heap[:0]
}

func (pq *MinHeap[T]) Insert(node PriorityQueueNode[T]) {
	pq.heap = append(pq.heap, node)
	pq.up(len(pq.heap) - 1)
}

func (pq *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], bool) {
	if len(pq.heap) == 0 {
		var zero PriorityQueueNode[T]
		return zero, false
	}
	min := pq.heap[0]
	last := len(pq.heap) - 1
	pq.heap[0] = pq.heap[last]
	pq.heap = pq.heap[:last]
	if last > 0 {
		pq.down(0)
	}
	return min, true
}

func (pq *MinHeap[T]) up(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if pq.heap[idx].Rank >= pq.heap[parent].Rank {
			break
		}
		pq.heap[idx], pq.heap[parent] = pq.heap[parent], pq.heap[idx]
		idx = parent
	}
}

func (pq *MinHeap[T]) down(idx int) {
	n := len(pq.heap)
	for {
		smallest := idx
		left := 2*idx + 1
		right := 2*idx + 2
		if left < n && pq.heap[left].Rank < pq.heap[smallest].Rank {
			smallest = left
		}
		if right < n && pq.heap[right].Rank < pq.heap[smallest].Rank {
			smallest = right
		}
		if smallest == idx {
			return
		}
		pq.heap[idx], pq.heap[smallest] = pq.heap[smallest], pq.heap[idx]
		idx = smallest
	}
}
