package dynfn

import (
	"sync/atomic"

	"github.com/on-the-ground/dyn_fn_go/storage"
)

// FnOnce is the single-shot erased callable: the captured state is consumed
// by the one permitted invocation.
//
// The consumption flag is tri-state (holding, consumed via Call, released
// without having been consumed) and is read exactly once during teardown to
// decide whether the captured value still needs destruction. Call enforces
// affine use: a second invocation, or an invocation after Close, panics.
type FnOnce[A, R any] struct {
	used atomic.Uintptr
	slot storage.MutSlot
	tab  *callTable[A, R]
}

// NewFnOnce erases f into an exclusively owned heap cell, the default
// backend.
func NewFnOnce[A, R any, F OnceCallable[A, R]](f F) *FnOnce[A, R] {
	return NewFnOnceIn[A, R, F](f, storage.BoxedIn)
}

// NewFnOnceIn erases f into a slot built by the given maker. Consumption
// moves the value out of the slot, so only exclusively owned backends apply.
func NewFnOnceIn[A, R any, F OnceCallable[A, R]](f F, in storage.Maker) *FnOnce[A, R] {
	tab := tableByOnce[A, R, F]()
	return &FnOnce[A, R]{
		slot: in(f, tab.release.Layout()),
		tab:  tab,
	}
}

// Call consumes the captured callable and invokes it. The value is moved out
// of the slot before the call and its Dispose hook runs when the call
// returns, the emptied slot being reclaimed alongside it even if the callable
// panics. Panics if the container was already consumed or closed.
func (c *FnOnce[A, R]) Call(arg A) R {
	if c.used.Add(1) != 1 {
		panic("dynfn: single-shot callable invoked twice")
	}
	fn, moved := storage.MoveOut(c.slot)
	defer moved.Release(c.tab.release)
	defer c.tab.release.Dispose(fn)
	return c.tab.invoke(fn, arg)
}

// Close finalizes the container. If the callable was never consumed, its
// Dispose hook runs here; if Call already claimed it, the invocation was the
// exit path that destroyed it. Closing twice is a no-op.
func (c *FnOnce[A, R]) Close() {
	if c.used.Add(1) == 1 {
		c.slot.Release(c.tab.release)
	}
}

// Consumed reports whether the one permitted invocation (or Close) has
// already claimed the captured state.
func (c *FnOnce[A, R]) Consumed() bool {
	return c.used.Load() != 0
}

// Sendable certifies the container for handing across goroutines before its
// single invocation.
func (c *FnOnce[A, R]) Sendable() *SendFnOnce[A, R] {
	mustBeSendSlot(c.slot)
	return &SendFnOnce[A, R]{inner: c}
}
