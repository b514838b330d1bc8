package asyncfn

import (
	"context"

	"github.com/on-the-ground/dyn_fn_go/dynfn"
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// DefaultFutureIn is the default maker for computation storage: adaptive
// with a sixteen-word inline capacity.
func DefaultFutureIn() storage.Maker {
	return storage.AdaptiveIn(storage.DefaultFutureCapacity())
}

// AsyncFn is the reusable, by-reference erased async callable. It owns one
// slot for the captured callable; each invocation places the produced
// computation in a second slot built by the container's future maker.
type AsyncFn[A, R any] struct {
	slot     storage.Slot
	tab      *asyncTable[A, R]
	futureIn storage.Maker
	closed   bool
}

// NewAsyncFn erases f with the default backends: an exclusively owned heap
// cell for the callable, adaptive storage for its computations.
func NewAsyncFn[A, R any, F AsyncCallable[A, R]](f F) *AsyncFn[A, R] {
	return NewAsyncFnIn[A, R, F](f, storage.BoxedIn, DefaultFutureIn())
}

// NewAsyncFnIn erases f, choosing both storages explicitly.
func NewAsyncFnIn[A, R any, F AsyncCallable[A, R]](f F, fnIn, futureIn storage.Maker) *AsyncFn[A, R] {
	tab := asyncTableByRef[A, R, F]()
	return &AsyncFn[A, R]{
		slot:     fnIn(f, tab.release.Layout()),
		tab:      tab,
		futureIn: futureIn,
	}
}

// NewSharedAsyncFn erases f into a reference-counted cell with a plain
// counter; the container becomes cloneable but must stay in one goroutine.
func NewSharedAsyncFn[A, R any, F AsyncCallable[A, R]](f F) *AsyncFn[A, R] {
	tab := asyncTableByRef[A, R, F]()
	return &AsyncFn[A, R]{
		slot:     storage.NewSharedLocal(f),
		tab:      tab,
		futureIn: DefaultFutureIn(),
	}
}

// NewSharedAtomicAsyncFn erases f into an atomically reference-counted
// cell, cloneable and safe to hand across goroutines.
func NewSharedAtomicAsyncFn[A, R any, F AsyncCallable[A, R]](f F) *AsyncFn[A, R] {
	tab := asyncTableByRef[A, R, F]()
	return &AsyncFn[A, R]{
		slot:     storage.NewSharedAtomic(f),
		tab:      tab,
		futureIn: DefaultFutureIn(),
	}
}

// FromSyncFn erases a synchronous callable. The container advertises the
// synchronous fast path: CallSync succeeds and CallAsync produces a
// computation that completes on its first poll.
func FromSyncFn[A, R any, F dynfn.Callable[A, R]](f F) *AsyncFn[A, R] {
	return FromSyncFnIn[A, R, F](f, storage.BoxedIn, DefaultFutureIn())
}

// FromSyncFnIn is FromSyncFn with both storages chosen explicitly.
func FromSyncFnIn[A, R any, F dynfn.Callable[A, R]](f F, fnIn, futureIn storage.Maker) *AsyncFn[A, R] {
	tab := syncTableByRef[A, R, F]()
	return &AsyncFn[A, R]{
		slot:     fnIn(f, tab.release.Layout()),
		tab:      tab,
		futureIn: futureIn,
	}
}

// CallAsync invokes the callable and returns the handle to the produced
// computation, already placed in the container's future storage.
func (c *AsyncFn[A, R]) CallAsync(arg A) *Pending[R] {
	return c.tab.call(c.slot.Get(), arg, c.futureIn)
}

// Call invokes the callable and drives the computation to completion.
func (c *AsyncFn[A, R]) Call(ctx context.Context, arg A) (R, error) {
	return c.CallAsync(arg).Await(ctx)
}

// IsSync reports whether the captured callable is synchronous.
func (c *AsyncFn[A, R]) IsSync() bool { return c.tab.callSync != nil }

// CallSync invokes the callable through the synchronous bypass. The false
// return means "not synchronous": the caller falls back to the async path.
func (c *AsyncFn[A, R]) CallSync(arg A) (R, bool) {
	if c.tab.callSync == nil {
		var zero R
		return zero, false
	}
	return c.tab.callSync(c.slot.Get(), arg), true
}

// CallTrySync takes the synchronous fast path when available and falls back
// to driving the full computation otherwise. Behavior is identical either
// way; only latency differs.
func (c *AsyncFn[A, R]) CallTrySync(ctx context.Context, arg A) (R, error) {
	if v, ok := c.CallSync(arg); ok {
		return v, nil
	}
	return c.Call(ctx, arg)
}

// Clone returns a new handle sharing the captured callable and dispatch
// table. Only reference-counted backends support cloning.
func (c *AsyncFn[A, R]) Clone() *AsyncFn[A, R] {
	switch s := c.slot.(type) {
	case *storage.SharedLocal:
		return &AsyncFn[A, R]{slot: s.Clone(), tab: c.tab, futureIn: c.futureIn}
	case *storage.SharedAtomic:
		return &AsyncFn[A, R]{slot: s.Clone(), tab: c.tab, futureIn: c.futureIn}
	default:
		panic("asyncfn: clone requires reference-counted storage")
	}
}

// Close releases the callable's storage at most once. Computations already
// handed out as Pending handles own their storage independently and are
// unaffected.
func (c *AsyncFn[A, R]) Close() {
	if !c.closed {
		c.slot.Release(c.tab.release)
		c.closed = true
	}
}

// Sendable certifies the container for cross-goroutine use; the caller
// asserts the captured callable tolerates it.
func (c *AsyncFn[A, R]) Sendable() *SendAsyncFn[A, R] {
	mustBeSendSlot(c.slot)
	return &SendAsyncFn[A, R]{inner: c}
}
