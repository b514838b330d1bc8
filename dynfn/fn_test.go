package dynfn_test

import (
	"sync/atomic"
	"testing"

	"github.com/on-the-ground/dyn_fn_go/dynfn"
	"github.com/on-the-ground/dyn_fn_go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lenFn captures two counters; Call is read-only on the capture.
type lenFn struct {
	calls *atomic.Int32
	drops *atomic.Int32
}

func (f lenFn) Call(s string) int {
	f.calls.Add(1)
	return len(s)
}

func (f lenFn) Dispose() {
	f.drops.Add(1)
}

func newLenFn() (lenFn, *atomic.Int32, *atomic.Int32) {
	calls, drops := &atomic.Int32{}, &atomic.Int32{}
	return lenFn{calls: calls, drops: drops}, calls, drops
}

func TestFn_CallByReference(t *testing.T) {
	restore := dynfn.WithTestLogger()
	defer restore()

	f, calls, _ := newLenFn()
	c := dynfn.NewFn[string, int](f)
	defer c.Close()

	assert.Equal(t, 4, c.Call("test"))
	assert.Equal(t, 4, c.Call("four"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestFn_FuncAdapter(t *testing.T) {
	c := dynfn.NewFn[string, int](dynfn.Func[string, int](func(s string) int {
		return len(s)
	}))
	defer c.Close()

	if got := c.Call("test"); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestFn_CloseDisposesExactlyOnce(t *testing.T) {
	backends := map[string]func(f lenFn) *dynfn.Fn[string, int]{
		"boxed": func(f lenFn) *dynfn.Fn[string, int] {
			return dynfn.NewFn[string, int](f)
		},
		"inline": func(f lenFn) *dynfn.Fn[string, int] {
			lay := storage.LayoutOf[lenFn]()
			return dynfn.NewFnIn[string, int](f, storage.InlineIn(storage.NewCapacity(lay.Size, lay.Align)))
		},
		"adaptive": func(f lenFn) *dynfn.Fn[string, int] {
			return dynfn.NewFnIn[string, int](f, storage.AdaptiveIn(storage.DefaultCapacity()))
		},
		"shared_local": func(f lenFn) *dynfn.Fn[string, int] {
			return dynfn.NewSharedFn[string, int](f)
		},
		"shared_atomic": func(f lenFn) *dynfn.Fn[string, int] {
			return dynfn.NewSharedAtomicFn[string, int](f)
		},
	}

	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			f, _, drops := newLenFn()
			c := build(f)

			require.Equal(t, 4, c.Call("test"))

			c.Close()
			assert.Equal(t, int32(1), drops.Load())

			// double close must not double-dispose
			c.Close()
			assert.Equal(t, int32(1), drops.Load())
		})
	}
}

func TestFn_DestroyWithoutInvoking(t *testing.T) {
	f, calls, drops := newLenFn()

	c := dynfn.NewFn[string, int](f)
	c.Close()

	assert.Zero(t, calls.Load())
	assert.Equal(t, int32(1), drops.Load())
}

func TestFn_SharedCloneDisposesAfterLast(t *testing.T) {
	for name, build := range map[string]func(f lenFn) *dynfn.Fn[string, int]{
		"shared_local":  dynfn.NewSharedFn[string, int, lenFn],
		"shared_atomic": dynfn.NewSharedAtomicFn[string, int, lenFn],
	} {
		t.Run(name, func(t *testing.T) {
			f, _, drops := newLenFn()
			c := build(f)

			const n = 3
			clones := make([]*dynfn.Fn[string, int], 0, n)
			for i := 0; i < n; i++ {
				clones = append(clones, c.Clone())
			}

			c.Close()
			for _, cl := range clones {
				assert.Equal(t, 4, cl.Call("test"))
				cl.Close()
			}
			assert.Equal(t, int32(1), drops.Load())
		})
	}
}

func TestFn_CloneRequiresSharedStorage(t *testing.T) {
	f, _, _ := newLenFn()
	c := dynfn.NewFn[string, int](f)
	defer c.Close()

	assert.Panics(t, func() { c.Clone() })
}

func TestFn_InlineCapacityRejectedAtConstruction(t *testing.T) {
	f, _, _ := newLenFn()

	assert.Panics(t, func() {
		dynfn.NewFnIn[string, int](f, storage.InlineIn(storage.NewCapacity(1, 1)))
	})
}
