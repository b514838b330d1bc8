package asyncfn_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/dyn_fn_go/asyncfn"
	"github.com/on-the-ground/dyn_fn_go/dynfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asyncAccumulator mutates its captured sum before producing the
// computation, so it uses a pointer receiver.
type asyncAccumulator struct {
	sum   int
	drops *atomic.Int32
}

func (a *asyncAccumulator) CallAsyncMut(n int) asyncfn.Future[int] {
	a.sum += n
	return asyncfn.NewReady(a.sum)
}

func (a *asyncAccumulator) Dispose() {
	a.drops.Add(1)
}

func TestAsyncFnMut_MutationPersistsAcrossInvocations(t *testing.T) {
	ctx := context.Background()
	drops := &atomic.Int32{}
	c := asyncfn.NewAsyncFnMut[int, int](&asyncAccumulator{drops: drops})

	got, err := c.Call(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = c.Call(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	c.Close()
	assert.Equal(t, int32(1), drops.Load())

	c.Close()
	assert.Equal(t, int32(1), drops.Load())
}

func TestAsyncFnMut_SyncFastPath(t *testing.T) {
	count := 0
	c := asyncfn.FromSyncFnMut[int, int](dynfn.MutFunc[int, int](func(n int) int {
		count += n
		return count
	}))
	defer c.Close()

	require.True(t, c.IsSync())

	got, ok := c.CallSync(5)
	require.True(t, ok)
	assert.Equal(t, 5, got)

	// the bypass and the full path share the captured state
	got, err := c.Call(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestAsyncFnMut_SendableHandsOffWholeContainer(t *testing.T) {
	drops := &atomic.Int32{}
	c := asyncfn.NewAsyncFnMut[int, int](&asyncAccumulator{drops: drops}).Sendable()

	resCh := make(chan int, 1)
	go func() {
		defer c.Close()
		got, err := c.Call(context.Background(), 4)
		assert.NoError(t, err)
		resCh <- got
	}()

	assert.Equal(t, 4, <-resCh)
}
