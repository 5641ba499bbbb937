// Package cachedendpoint memoizes the result of a request function until it
// is explicitly reset, sharing one in-flight request between concurrent
// readers.
package cachedendpoint

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Fetch produces a fresh value.
type Fetch[T any] func(context.Context) (T, error)

// Endpoint caches the latest successful Fetch result per reset cycle.
//
// A cycle starts with New and with every Reset. Within one cycle at most one
// request is in flight. A request from an earlier cycle is never aborted by
// Reset, but its result is never stored into a later cycle.
type Endpoint[T any] struct {
	fetch Fetch[T]
	group singleflight.Group

	mu     sync.Mutex
	cycle  uint64
	value  T
	stored bool
}

// New wraps fetch.
func New[T any](fetch Fetch[T]) *Endpoint[T] {
	return &Endpoint[T]{fetch: fetch}
}

// Get returns the value of the current cycle, joining or starting its request
// when none is stored. ctx bounds only this caller's wait; the shared request
// runs detached from any single caller's cancellation. Errors reach every
// waiter of that request and are not stored, so the next Get retries.
func (e *Endpoint[T]) Get(ctx context.Context) (T, error) {
	e.mu.Lock()
	if e.stored {
		value := e.value
		e.mu.Unlock()
		return value, nil
	}
	cycle := e.cycle
	e.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	ch := e.group.DoChan(strconv.FormatUint(cycle, 10), func() (any, error) {
		// A previous flight of this cycle may have finished after the
		// stored check above.
		e.mu.Lock()
		if e.stored && e.cycle == cycle {
			value := e.value
			e.mu.Unlock()
			return value, nil
		}
		e.mu.Unlock()

		value, err := e.fetch(detached)
		if err != nil {
			return value, err
		}
		e.mu.Lock()
		if e.cycle == cycle {
			e.value = value
			e.stored = true
		}
		e.mu.Unlock()
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Peek returns the stored value of the current cycle without fetching.
func (e *Endpoint[T]) Peek() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, e.stored
}

// Reset starts a new cycle. The next Get issues a new request.
func (e *Endpoint[T]) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cycle++
	var zero T
	e.value = zero
	e.stored = false
}
