package worker

import (
	"context"
	"sync"
)

type ProcessFunc[T any] func(ctx context.Context, job T) error

// Pool runs a fixed number of workers over a bounded job queue.
type Pool[T any] struct {
	numWorkers int
	jobs       chan T
	processor  ProcessFunc[T]
	wg         sync.WaitGroup

	mu       sync.RWMutex
	stopped  bool
	quit     chan struct{}
	quitOnce sync.Once
}

func NewPool[T any](numWorkers int, bufferSize int, processor ProcessFunc[T]) *Pool[T] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Pool[T]{
		numWorkers: numWorkers,
		jobs:       make(chan T, bufferSize),
		processor:  processor,
		quit:       make(chan struct{}),
	}
}

func (p *Pool[T]) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// worker runs until Stop closes the queue. Cancelling ctx reaches the
// processor but does not discard accepted jobs.
func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.jobs {
		p.processor(ctx, job)
	}
}

// Submit queues job, blocking while the queue is full. It returns false once
// the pool has been stopped.
func (p *Pool[T]) Submit(job T) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	case <-p.quit:
		return false
	}
}

// Stop closes the queue and waits for the workers to finish. Safe to call twice.
func (p *Pool[T]) Stop() {
	// Wake submitters blocked on a full queue so they release the read lock.
	p.quitOnce.Do(func() { close(p.quit) })

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
