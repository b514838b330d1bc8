package dynfn

import (
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// Fn is the reusable, by-reference erased callable. It owns exactly one
// storage slot and references exactly one dispatch table.
type Fn[A, R any] struct {
	slot   storage.Slot
	tab    *callTable[A, R]
	closed bool
}

// NewFn erases f into an exclusively owned heap cell, the default backend.
func NewFn[A, R any, F Callable[A, R]](f F) *Fn[A, R] {
	return NewFnIn[A, R, F](f, storage.BoxedIn)
}

// NewFnIn erases f into a slot built by the given maker. Capacity violations
// of fixed-size backends surface here, at construction, never at call time.
func NewFnIn[A, R any, F Callable[A, R]](f F, in storage.Maker) *Fn[A, R] {
	tab := tableByRef[A, R, F]()
	return &Fn[A, R]{
		slot: in(f, tab.release.Layout()),
		tab:  tab,
	}
}

// NewSharedFn erases f into a reference-counted cell with a plain counter.
// The container becomes cloneable but must stay within one goroutine.
func NewSharedFn[A, R any, F Callable[A, R]](f F) *Fn[A, R] {
	tab := tableByRef[A, R, F]()
	return &Fn[A, R]{slot: storage.NewSharedLocal(f), tab: tab}
}

// NewSharedAtomicFn erases f into an atomically reference-counted cell,
// cloneable and safe to hand across goroutines.
func NewSharedAtomicFn[A, R any, F Callable[A, R]](f F) *Fn[A, R] {
	tab := tableByRef[A, R, F]()
	return &Fn[A, R]{slot: storage.NewSharedAtomic(f), tab: tab}
}

// Call resolves the captured callable through the slot and invokes it
// through the dispatch table. No allocation happens beyond what the callable
// itself performs.
func (c *Fn[A, R]) Call(arg A) R {
	return c.tab.invoke(c.slot.Get(), arg)
}

// Clone returns a new handle sharing the captured state and dispatch table.
// Only reference-counted backends support cloning; anything else panics.
func (c *Fn[A, R]) Clone() *Fn[A, R] {
	switch s := c.slot.(type) {
	case *storage.SharedLocal:
		return &Fn[A, R]{slot: s.Clone(), tab: c.tab}
	case *storage.SharedAtomic:
		return &Fn[A, R]{slot: s.Clone(), tab: c.tab}
	default:
		panic("dynfn: clone requires reference-counted storage")
	}
}

// Close releases the storage at most once, running the captured value's
// Dispose hook (through the refcount for shared backends).
func (c *Fn[A, R]) Close() {
	if !c.closed {
		c.slot.Release(c.tab.release)
		c.closed = true
	}
}

// Sendable certifies the container for cross-goroutine use. It panics unless
// the storage backend is certified; the caller additionally asserts that the
// captured callable itself is safe to invoke from other goroutines.
func (c *Fn[A, R]) Sendable() *SendFn[A, R] {
	mustBeSendSlot(c.slot)
	return &SendFn[A, R]{inner: c}
}
