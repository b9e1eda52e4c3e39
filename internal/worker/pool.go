// Package worker provides a fixed size pool used to bound concurrent probes.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultSize is the number of concurrent tasks a pool allows when no
// size is given
const DefaultSize = 20

// ErrPoolClosed returned when submitting to a closed pool
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool runs submitted tasks on their own goroutines while never allowing
// more than Size of them to run at the same time. A pool is meant to be
// created once and reused for many batches of work.
type Pool struct {
	size     int
	sem      *semaphore.Weighted
	inFlight atomic.Int64
	peak     atomic.Int64
	closed   atomic.Bool
	wg       sync.WaitGroup
}

// NewPool returns a new pool allowing size concurrent tasks
func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}

	return &Pool{
		size: size,
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Size returns the configured concurrency bound
func (p *Pool) Size() int {
	return p.size
}

// InFlight returns the number of tasks currently running
func (p *Pool) InFlight() int {
	return int(p.inFlight.Load())
}

// Peak returns the highest number of tasks that ran at the same time
func (p *Pool) Peak() int {
	return int(p.peak.Load())
}

// Go blocks until a slot is free then runs task on a new goroutine. If ctx
// is done before a slot frees up the task is not run and ctx's error is
// returned.
func (p *Pool) Go(ctx context.Context, task func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	p.wg.Add(1)
	p.trackStart()

	go func() {
		defer func() {
			p.inFlight.Add(-1)
			p.sem.Release(1)
			p.wg.Done()
		}()

		task()
	}()

	return nil
}

// Wait blocks until every submitted task has returned
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close rejects further submissions and waits for running tasks
func (p *Pool) Close() {
	p.closed.Store(true)
	p.wg.Wait()
}

func (p *Pool) trackStart() {
	current := p.inFlight.Add(1)

	for {
		peak := p.peak.Load()

		if current <= peak || p.peak.CompareAndSwap(peak, current) {
			return
		}
	}
}
