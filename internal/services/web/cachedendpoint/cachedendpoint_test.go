package cachedendpoint

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedFetch blocks every call until release is closed and counts calls.
type gatedFetch struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
}

func newGatedFetch() *gatedFetch {
	return &gatedFetch{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (g *gatedFetch) fetch(context.Context) (int, error) {
	n := g.calls.Add(1)
	g.started <- struct{}{}
	<-g.release
	if g.err != nil {
		return 0, g.err
	}
	return int(n), nil
}

func TestConcurrentGetsShareOneRequest(t *testing.T) {
	t.Parallel()

	g := newGatedFetch()
	endpoint := New(g.fetch)

	const readers = 20
	var wg sync.WaitGroup
	results := make([]int, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := endpoint.Get(context.Background())
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	<-g.started
	// Let the remaining readers join the in-flight call.
	time.Sleep(20 * time.Millisecond)
	close(g.release)
	wg.Wait()

	assert.Equal(t, int32(1), g.calls.Load())
	for _, v := range results {
		assert.Equal(t, 1, v)
	}

	v, err := endpoint.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, int32(1), g.calls.Load())
}

func TestResetIssuesExactlyOneNewRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	endpoint := New(func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	})

	v, err := endpoint.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	endpoint.Reset()
	_, ok := endpoint.Peek()
	assert.False(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = endpoint.Get(context.Background())
		}()
	}
	wg.Wait()

	v, err = endpoint.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestResetDuringFlightDoesNotStoreStaleValue(t *testing.T) {
	t.Parallel()

	g := newGatedFetch()
	endpoint := New(g.fetch)

	done := make(chan int)
	go func() {
		v, _ := endpoint.Get(context.Background())
		done <- v
	}()
	<-g.started
	endpoint.Reset()
	close(g.release)
	assert.Equal(t, 1, <-done)

	_, ok := endpoint.Peek()
	assert.False(t, ok, "value of an earlier cycle must not be stored")

	v, err := endpoint.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestErrorsAreNotMemoized(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	boom := errors.New("boom")
	endpoint := New(func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", boom
		}
		return "ok", nil
	})

	_, err := endpoint.Get(context.Background())
	assert.ErrorIs(t, err, boom)

	v, err := endpoint.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCanceledWaiterDoesNotCancelSharedRequest(t *testing.T) {
	t.Parallel()

	g := newGatedFetch()
	endpoint := New(g.fetch)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error)
	go func() {
		_, err := endpoint.Get(ctx)
		errc <- err
	}()
	<-g.started
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	close(g.release)
	require.Eventually(t, func() bool {
		_, ok := endpoint.Peek()
		return ok
	}, time.Second, 5*time.Millisecond)

	v, err := endpoint.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, int32(1), g.calls.Load())
}
