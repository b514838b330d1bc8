package dynfn

import (
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// FnMut is the reusable, by-exclusive-reference erased callable. Invocations
// may mutate the captured state, so the caller must guarantee no two
// invocations run concurrently; the engine does not serialize for it.
type FnMut[A, R any] struct {
	slot   storage.MutSlot
	tab    *callTable[A, R]
	closed bool
}

// NewFnMut erases f into an exclusively owned heap cell, the default
// backend.
func NewFnMut[A, R any, F MutCallable[A, R]](f F) *FnMut[A, R] {
	return NewFnMutIn[A, R, F](f, storage.BoxedIn)
}

// NewFnMutIn erases f into a slot built by the given maker. Mutable access
// requires an exclusively owned backend, which is what every Maker builds;
// reference-counted cells cannot back a FnMut.
func NewFnMutIn[A, R any, F MutCallable[A, R]](f F, in storage.Maker) *FnMut[A, R] {
	tab := tableByMutRef[A, R, F]()
	return &FnMut[A, R]{
		slot: in(f, tab.release.Layout()),
		tab:  tab,
	}
}

// Call resolves the captured callable with exclusive access and invokes it
// through the dispatch table.
func (c *FnMut[A, R]) Call(arg A) R {
	return c.tab.invoke(c.slot.Get(), arg)
}

// Close releases the storage at most once, running the captured value's
// Dispose hook.
func (c *FnMut[A, R]) Close() {
	if !c.closed {
		c.slot.Release(c.tab.release)
		c.closed = true
	}
}

// Sendable certifies the container for handing across goroutines. Exclusive
// invocation remains the caller's obligation after the move.
func (c *FnMut[A, R]) Sendable() *SendFnMut[A, R] {
	mustBeSendSlot(c.slot)
	return &SendFnMut[A, R]{inner: c}
}
