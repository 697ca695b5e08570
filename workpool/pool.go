// Package workpool provides a bounded worker pool for dispatching
// inference-bound work off the cooperative event flow. The pool is shared
// process-wide; each submission is awaited back by its own invocation.
package workpool

import "context"

// Pool bounds the number of concurrently running tasks.
type Pool struct {
	slots chan struct{}
}

// New creates a pool running at most size tasks at once.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{slots: make(chan struct{}, size)}
}

// Size returns the pool's concurrency bound.
func (p *Pool) Size() int { return cap(p.slots) }

// Future holds the eventual result of a submitted task.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Wait blocks until the task finishes or ctx is canceled. On cancellation
// the task itself is abandoned, not interrupted; it observes the same ctx
// and is expected to stop cooperatively.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit schedules fn on the pool and returns a future for its result.
// If ctx is canceled before a slot frees, fn never runs and the future
// resolves to the context error.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case p.slots <- struct{}{}:
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		}
		defer func() { <-p.slots }()

		f.val, f.err = fn(ctx)
	}()

	return f
}
