package scorer

import "sync"

// ClosureStore is the live set of closed edge ids consulted by
// ClosureScorer. Safe for concurrent use: the REST layer mutates it while
// searches read it between calls.
type ClosureStore struct {
	mu     sync.RWMutex
	closed map[int32]struct{}
}

func NewClosureStore() *ClosureStore {
	return &ClosureStore{closed: make(map[int32]struct{})}
}

func (c *ClosureStore) Close(edgeID int32) {
	c.mu.Lock()
	c.closed[edgeID] = struct{}{}
	c.mu.Unlock()
}

func (c *ClosureStore) Reopen(edgeID int32) {
	c.mu.Lock()
	delete(c.closed, edgeID)
	c.mu.Unlock()
}

func (c *ClosureStore) IsClosed(edgeID int32) bool {
	c.mu.RLock()
	_, ok := c.closed[edgeID]
	c.mu.RUnlock()
	return ok
}

func (c *ClosureStore) ListClosed() []int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int32, 0, len(c.closed))
	for id := range c.closed {
		ids = append(ids, id)
	}
	return ids
}
