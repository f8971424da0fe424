package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var ErrPoolClosed = errors.New("worker pool closed")

type ProcessFunc[T any] func(ctx context.Context, job T) error

// WorkerPool runs jobs of type T on a fixed number of goroutines.
type WorkerPool[T any] struct {
	numWorkers int
	jobs       chan T
	processor  ProcessFunc[T]
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool[T any](numWorkers int, bufferSize int, processor ProcessFunc[T]) *WorkerPool[T] {
	return &WorkerPool[T]{
		numWorkers: numWorkers,
		jobs:       make(chan T, bufferSize),
		processor:  processor,
	}
}

func (wp *WorkerPool[T]) Start(ctx context.Context) {
	for i := 1; i <= wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool[T]) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			if err := wp.processor(ctx, job); err != nil {
				slog.Debug("job failed", "worker", id, "error", err)
			}
		}
	}
}

// Submit queues a job, blocking while the buffer is full. It gives up when
// ctx is done or the pool has been stopped.
func (wp *WorkerPool[T]) Submit(ctx context.Context, job T) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrPoolClosed
	}

	select {
	case wp.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the queue and waits for workers to drain it.
func (wp *WorkerPool[T]) Stop() {
	wp.mu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.jobs)
	}
	wp.mu.Unlock()
	wp.wg.Wait()
}
