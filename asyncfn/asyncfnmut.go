package asyncfn

import (
	"context"

	"github.com/on-the-ground/dyn_fn_go/dynfn"
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// AsyncFnMut is the reusable, by-exclusive-reference erased async callable.
// Invocations may mutate the captured state; the caller must not invoke
// again until the previously produced computation completed or was
// discarded.
type AsyncFnMut[A, R any] struct {
	slot     storage.MutSlot
	tab      *asyncTable[A, R]
	futureIn storage.Maker
	closed   bool
}

// NewAsyncFnMut erases f with the default backends.
func NewAsyncFnMut[A, R any, F MutAsyncCallable[A, R]](f F) *AsyncFnMut[A, R] {
	return NewAsyncFnMutIn[A, R, F](f, storage.BoxedIn, DefaultFutureIn())
}

// NewAsyncFnMutIn erases f, choosing both storages explicitly.
func NewAsyncFnMutIn[A, R any, F MutAsyncCallable[A, R]](f F, fnIn, futureIn storage.Maker) *AsyncFnMut[A, R] {
	tab := asyncTableByMutRef[A, R, F]()
	return &AsyncFnMut[A, R]{
		slot:     fnIn(f, tab.release.Layout()),
		tab:      tab,
		futureIn: futureIn,
	}
}

// FromSyncFnMut erases a synchronous mutable callable, enabling the
// synchronous fast path.
func FromSyncFnMut[A, R any, F dynfn.MutCallable[A, R]](f F) *AsyncFnMut[A, R] {
	return FromSyncFnMutIn[A, R, F](f, storage.BoxedIn, DefaultFutureIn())
}

// FromSyncFnMutIn is FromSyncFnMut with both storages chosen explicitly.
func FromSyncFnMutIn[A, R any, F dynfn.MutCallable[A, R]](f F, fnIn, futureIn storage.Maker) *AsyncFnMut[A, R] {
	tab := syncTableByMutRef[A, R, F]()
	return &AsyncFnMut[A, R]{
		slot:     fnIn(f, tab.release.Layout()),
		tab:      tab,
		futureIn: futureIn,
	}
}

// CallAsync invokes the callable with exclusive access and returns the
// handle to the produced computation.
func (c *AsyncFnMut[A, R]) CallAsync(arg A) *Pending[R] {
	return c.tab.call(c.slot.Get(), arg, c.futureIn)
}

// Call invokes the callable and drives the computation to completion.
func (c *AsyncFnMut[A, R]) Call(ctx context.Context, arg A) (R, error) {
	return c.CallAsync(arg).Await(ctx)
}

// IsSync reports whether the captured callable is synchronous.
func (c *AsyncFnMut[A, R]) IsSync() bool { return c.tab.callSync != nil }

// CallSync invokes the callable through the synchronous bypass; false means
// the callable is not synchronous.
func (c *AsyncFnMut[A, R]) CallSync(arg A) (R, bool) {
	if c.tab.callSync == nil {
		var zero R
		return zero, false
	}
	return c.tab.callSync(c.slot.Get(), arg), true
}

// CallTrySync takes the synchronous fast path when available, falling back
// to the full async path.
func (c *AsyncFnMut[A, R]) CallTrySync(ctx context.Context, arg A) (R, error) {
	if v, ok := c.CallSync(arg); ok {
		return v, nil
	}
	return c.Call(ctx, arg)
}

// Close releases the callable's storage at most once.
func (c *AsyncFnMut[A, R]) Close() {
	if !c.closed {
		c.slot.Release(c.tab.release)
		c.closed = true
	}
}

// Sendable certifies the container for handing across goroutines; exclusive
// invocation remains the caller's obligation after the move.
func (c *AsyncFnMut[A, R]) Sendable() *SendAsyncFnMut[A, R] {
	mustBeSendSlot(c.slot)
	return &SendAsyncFnMut[A, R]{inner: c}
}
