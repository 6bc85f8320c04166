package concurrent

import (
	"context"
	"sync"
)

// WorkerPool fans a queue of jobs out to numWorkers goroutines and collects
// their results. Used for batch writes to the graph store.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, queueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], queueSize),
		results:    make(chan G, queueSize),
	}
}

func (wp *WorkerPool[T, G]) AddJob(job Job[T]) {
	wp.jobQueue <- job
}

// Close marks the job queue complete. Call after the last AddJob.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Start launches the workers and closes the results channel once every
// queued job is done. After ctx is cancelled workers keep draining the
// job queue without running fn, so producers blocked on AddJob never
// stall; the caller detects the abort through ctx.Err() once the results
// channel closes.
func (wp *WorkerPool[T, G]) Start(ctx context.Context, fn JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go func() {
			defer wp.wg.Done()
			for job := range wp.jobQueue {
				select {
				case <-ctx.Done():
					continue
				default:
				}
				wp.results <- fn(job.JobItem)
			}
		}()
	}

	go func() {
		wp.wg.Wait()
		close(wp.results)
	}()
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}
