package worker_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robgonnella/backupcheck/internal/worker"
	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	t.Run("uses default size for non positive sizes", func(st *testing.T) {
		pool := worker.NewPool(0)

		assert.Equal(st, worker.DefaultSize, pool.Size())
	})

	t.Run("never runs more than size tasks at once", func(st *testing.T) {
		pool := worker.NewPool(3)

		var running atomic.Int64
		var maxSeen atomic.Int64
		var done atomic.Int64

		for i := 0; i < 30; i++ {
			err := pool.Go(context.Background(), func() {
				current := running.Add(1)

				for {
					seen := maxSeen.Load()
					if current <= seen || maxSeen.CompareAndSwap(seen, current) {
						break
					}
				}

				time.Sleep(time.Millisecond * 5)
				running.Add(-1)
				done.Add(1)
			})

			assert.NoError(st, err)
		}

		pool.Wait()

		assert.Equal(st, int64(30), done.Load())
		assert.LessOrEqual(st, maxSeen.Load(), int64(3))
		assert.LessOrEqual(st, pool.Peak(), 3)
		assert.Equal(st, 0, pool.InFlight())
	})

	t.Run("returns context error when no slot frees up", func(st *testing.T) {
		pool := worker.NewPool(1)
		release := make(chan struct{})
		wg := sync.WaitGroup{}
		wg.Add(1)

		err := pool.Go(context.Background(), func() {
			defer wg.Done()
			<-release
		})

		assert.NoError(st, err)

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
		defer cancel()

		ran := false

		err = pool.Go(ctx, func() { ran = true })

		assert.ErrorIs(st, err, context.DeadlineExceeded)

		close(release)
		wg.Wait()
		pool.Wait()

		assert.False(st, ran)
	})

	t.Run("rejects tasks after close", func(st *testing.T) {
		pool := worker.NewPool(2)

		pool.Close()

		err := pool.Go(context.Background(), func() {})

		assert.ErrorIs(st, err, worker.ErrPoolClosed)
	})
}
