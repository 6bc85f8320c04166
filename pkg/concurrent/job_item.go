package concurrent

// Job is one unit of work handed to the pool.
type Job[T any] struct {
	ID      int
	JobItem T
}

// JobFunc processes one job item and produces a result.
type JobFunc[T any, G any] func(job T) G
