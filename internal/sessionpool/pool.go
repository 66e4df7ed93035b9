// Package sessionpool bounds the number of concurrently active solve
// sessions a backend process will run. Each session is a long-lived,
// stateful handler (spec.md §6.2), not a short goal-evaluation task, so
// admission is gated by a fixed-size semaphore rather than the dynamic
// scale-up/scale-down worker pool the original goal evaluator used for
// bursts of short-lived work.
package sessionpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Go when the pool has been shut down.
var ErrClosed = errors.New("sessionpool: pool closed")

// Pool admits at most Size() concurrently running sessions. Callers that
// exceed the limit block in Go until a slot frees up, the context is
// canceled, or the pool is shut down.
type Pool struct {
	sem    chan struct{}
	wg     sync.WaitGroup
	closed chan struct{}
	once   sync.Once

	active int64 // atomic, for Stats
	peak   int64 // atomic, high-water mark
}

// New creates a Pool admitting at most size concurrent sessions. A
// non-positive size is treated as 1: a session handler is never
// optional work that can be dropped, so the pool must always admit at
// least one.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		sem:    make(chan struct{}, size),
		closed: make(chan struct{}),
	}
}

// Size reports the pool's configured admission limit.
func (p *Pool) Size() int { return cap(p.sem) }

// Stats is a point-in-time snapshot of pool occupancy.
type Stats struct {
	Active int // sessions currently running
	Peak   int // high-water mark since the pool was created
	Size   int // configured admission limit
}

// Stats returns a snapshot of current pool occupancy.
func (p *Pool) Stats() Stats {
	return Stats{
		Active: int(atomic.LoadInt64(&p.active)),
		Peak:   int(atomic.LoadInt64(&p.peak)),
		Size:   p.Size(),
	}
}

// Go runs fn in its own goroutine once a slot is available, blocking
// until one is, ctx is canceled, or the pool is closed. It returns
// immediately after the goroutine is started; callers that need to know
// when fn finishes should signal that themselves (fn owns its own
// lifetime, matching a session's own Handle/Solve/Reset loop).
func (p *Pool) Go(ctx context.Context, fn func()) error {
	select {
	case <-p.closed:
		return ErrClosed
	default:
	}
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.closed:
		return ErrClosed
	}

	n := atomic.AddInt64(&p.active, 1)
	for {
		peak := atomic.LoadInt64(&p.peak)
		if n <= peak || atomic.CompareAndSwapInt64(&p.peak, peak, n) {
			break
		}
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			atomic.AddInt64(&p.active, -1)
			<-p.sem
		}()
		fn()
	}()
	return nil
}

// Close stops admitting new sessions and waits for all running ones to
// finish. It is idempotent.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.closed) })
	p.wg.Wait()
}
