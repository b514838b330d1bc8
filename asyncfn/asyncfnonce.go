package asyncfn

import (
	"context"
	"sync/atomic"

	"github.com/on-the-ground/dyn_fn_go/dynfn"
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// AsyncFnOnce is the single-shot erased async callable: the one permitted
// invocation consumes the captured state into the produced computation.
//
// The consumption flag follows the same tri-state lifecycle as
// dynfn.FnOnce; Close disposes the captured value only if no invocation
// ever claimed it.
type AsyncFnOnce[A, R any] struct {
	used     atomic.Uintptr
	slot     storage.MutSlot
	tab      *asyncTable[A, R]
	futureIn storage.Maker
}

// NewAsyncFnOnce erases f with the default backends.
func NewAsyncFnOnce[A, R any, F OnceAsyncCallable[A, R]](f F) *AsyncFnOnce[A, R] {
	return NewAsyncFnOnceIn[A, R, F](f, storage.BoxedIn, DefaultFutureIn())
}

// NewAsyncFnOnceIn erases f, choosing both storages explicitly.
func NewAsyncFnOnceIn[A, R any, F OnceAsyncCallable[A, R]](f F, fnIn, futureIn storage.Maker) *AsyncFnOnce[A, R] {
	tab := asyncTableByOnce[A, R, F]()
	return &AsyncFnOnce[A, R]{
		slot:     fnIn(f, tab.release.Layout()),
		tab:      tab,
		futureIn: futureIn,
	}
}

// FromSyncFnOnce erases a synchronous single-shot callable, enabling the
// synchronous bypass.
func FromSyncFnOnce[A, R any, F dynfn.OnceCallable[A, R]](f F) *AsyncFnOnce[A, R] {
	return FromSyncFnOnceIn[A, R, F](f, storage.BoxedIn, DefaultFutureIn())
}

// FromSyncFnOnceIn is FromSyncFnOnce with both storages chosen explicitly.
func FromSyncFnOnceIn[A, R any, F dynfn.OnceCallable[A, R]](f F, fnIn, futureIn storage.Maker) *AsyncFnOnce[A, R] {
	tab := syncTableByOnce[A, R, F]()
	return &AsyncFnOnce[A, R]{
		slot:     fnIn(f, tab.release.Layout()),
		tab:      tab,
		futureIn: futureIn,
	}
}

// CallAsync consumes the captured callable and returns the handle to the
// produced computation. The callable is consumed into the computation, so
// its Dispose hook runs when the computation's storage is released, whether
// by completion or by abandonment. Panics if the container was already
// consumed or closed.
func (c *AsyncFnOnce[A, R]) CallAsync(arg A) *Pending[R] {
	fn := c.consume()
	p := c.tab.call(fn, arg, c.futureIn)
	p.cleanup = func() { c.tab.release.Dispose(fn) }
	return p
}

// Call consumes the callable and drives the computation to completion.
func (c *AsyncFnOnce[A, R]) Call(ctx context.Context, arg A) (R, error) {
	return c.CallAsync(arg).Await(ctx)
}

// IsSync reports whether the captured callable is synchronous.
func (c *AsyncFnOnce[A, R]) IsSync() bool { return c.tab.callSync != nil }

// CallSync consumes the callable through the synchronous bypass; false
// means the callable is not synchronous and the container is left intact.
// There is no computation to carry the consumed value, so its Dispose hook
// runs when the bypassed call returns.
func (c *AsyncFnOnce[A, R]) CallSync(arg A) (R, bool) {
	if c.tab.callSync == nil {
		var zero R
		return zero, false
	}
	fn := c.consume()
	defer c.tab.release.Dispose(fn)
	return c.tab.callSync(fn, arg), true
}

// CallTrySync takes the synchronous fast path when available, falling back
// to the full async path. Either way the container is consumed.
func (c *AsyncFnOnce[A, R]) CallTrySync(ctx context.Context, arg A) (R, error) {
	if v, ok := c.CallSync(arg); ok {
		return v, nil
	}
	return c.Call(ctx, arg)
}

// Close finalizes the container, disposing the captured value only if it
// was never consumed. Closing twice is a no-op.
func (c *AsyncFnOnce[A, R]) Close() {
	if c.used.Add(1) == 1 {
		c.slot.Release(c.tab.release)
	}
}

// Consumed reports whether an invocation (or Close) has already claimed the
// captured state.
func (c *AsyncFnOnce[A, R]) Consumed() bool {
	return c.used.Load() != 0
}

// Sendable certifies the container for handing across goroutines before its
// single invocation.
func (c *AsyncFnOnce[A, R]) Sendable() *SendAsyncFnOnce[A, R] {
	mustBeSendSlot(c.slot)
	return &SendAsyncFnOnce[A, R]{inner: c}
}

// consume claims the captured callable, moving it out of the slot and
// reclaiming the emptied storage.
func (c *AsyncFnOnce[A, R]) consume() any {
	if c.used.Add(1) != 1 {
		panic("asyncfn: single-shot callable invoked twice")
	}
	fn, moved := storage.MoveOut(c.slot)
	moved.Release(c.tab.release)
	return fn
}
