package dynfn_test

import (
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/dyn_fn_go/dynfn"
	"github.com/on-the-ground/dyn_fn_go/storage"
	"github.com/stretchr/testify/assert"
)

// accumulator mutates its captured state on every call, so it uses a
// pointer receiver and is stored as a pointer.
type accumulator struct {
	sum   int
	drops *atomic.Int32
}

func (a *accumulator) CallMut(n int) int {
	a.sum += n
	return a.sum
}

func (a *accumulator) Dispose() {
	a.drops.Add(1)
}

func TestFnMut_MutatesCapturedState(t *testing.T) {
	drops := &atomic.Int32{}
	c := dynfn.NewFnMut[int, int](&accumulator{drops: drops})

	assert.Equal(t, 1, c.Call(1))
	assert.Equal(t, 3, c.Call(2))
	assert.Equal(t, 6, c.Call(3))

	c.Close()
	assert.Equal(t, int32(1), drops.Load())
}

func TestFnMut_MutFuncAdapter(t *testing.T) {
	count := 0
	c := dynfn.NewFnMut[int, int](dynfn.MutFunc[int, int](func(n int) int {
		count += n
		return count
	}))
	defer c.Close()

	if got := c.Call(5); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := c.Call(5); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestFnMut_InlineBackend(t *testing.T) {
	drops := &atomic.Int32{}
	lay := storage.LayoutOf[*accumulator]()
	c := dynfn.NewFnMutIn[int, int](
		&accumulator{drops: drops},
		storage.InlineIn(storage.NewCapacity(lay.Size, lay.Align)),
	)

	assert.Equal(t, 7, c.Call(7))
	c.Close()
	assert.Equal(t, int32(1), drops.Load())
}
