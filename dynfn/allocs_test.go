package dynfn_test

import (
	"testing"

	"github.com/on-the-ground/dyn_fn_go/dynfn"
)

// The invocation path resolves the slot and goes through the dispatch
// table; it must not allocate on its own.

func TestAllocs_FnCall(t *testing.T) {
	c := dynfn.NewFn[int, int](dynfn.Func[int, int](func(n int) int {
		return n + 1
	}))
	defer c.Close()

	allocs := testing.AllocsPerRun(100, func() {
		_ = c.Call(1)
	})
	if allocs != 0 {
		t.Fatalf("Fn.Call allocated %v times per run", allocs)
	}
}

func TestAllocs_FnMutCall(t *testing.T) {
	sum := 0
	c := dynfn.NewFnMut[int, int](dynfn.MutFunc[int, int](func(n int) int {
		sum += n
		return sum
	}))
	defer c.Close()

	allocs := testing.AllocsPerRun(100, func() {
		_ = c.Call(1)
	})
	if allocs != 0 {
		t.Fatalf("FnMut.Call allocated %v times per run", allocs)
	}
}
