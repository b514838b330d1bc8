package asyncfn

import (
	"context"

	"github.com/on-the-ground/dyn_fn_go/storage"
)

func mustBeSendSlot(s storage.Slot) {
	if _, ok := s.(storage.SendSlot); !ok {
		panic("asyncfn: storage backend not certified for cross-goroutine use")
	}
}

// SendAsyncFn is a by-reference async container certified for
// cross-goroutine use. Each invocation produces its own Pending handle, so
// concurrent CallAsync calls from different goroutines are read-only on the
// captured state; each handle must still be driven sequentially.
type SendAsyncFn[A, R any] struct {
	inner *AsyncFn[A, R]
}

// CallAsync invokes the underlying container.
func (c *SendAsyncFn[A, R]) CallAsync(arg A) *Pending[R] { return c.inner.CallAsync(arg) }

// Call invokes the underlying container and drives it to completion.
func (c *SendAsyncFn[A, R]) Call(ctx context.Context, arg A) (R, error) {
	return c.inner.Call(ctx, arg)
}

// IsSync reports whether the captured callable is synchronous.
func (c *SendAsyncFn[A, R]) IsSync() bool { return c.inner.IsSync() }

// CallSync invokes the synchronous bypass of the underlying container.
func (c *SendAsyncFn[A, R]) CallSync(arg A) (R, bool) { return c.inner.CallSync(arg) }

// CallTrySync takes the fast path when available.
func (c *SendAsyncFn[A, R]) CallTrySync(ctx context.Context, arg A) (R, error) {
	return c.inner.CallTrySync(ctx, arg)
}

// Clone clones the underlying container; see AsyncFn.Clone.
func (c *SendAsyncFn[A, R]) Clone() *SendAsyncFn[A, R] {
	return &SendAsyncFn[A, R]{inner: c.inner.Clone()}
}

// Close closes the underlying container.
func (c *SendAsyncFn[A, R]) Close() { c.inner.Close() }

// SendAsyncFnMut is a by-exclusive-reference async container certified for
// handing across goroutines, one invocation at a time.
type SendAsyncFnMut[A, R any] struct {
	inner *AsyncFnMut[A, R]
}

// CallAsync invokes the underlying container.
func (c *SendAsyncFnMut[A, R]) CallAsync(arg A) *Pending[R] { return c.inner.CallAsync(arg) }

// Call invokes the underlying container and drives it to completion.
func (c *SendAsyncFnMut[A, R]) Call(ctx context.Context, arg A) (R, error) {
	return c.inner.Call(ctx, arg)
}

// Close closes the underlying container.
func (c *SendAsyncFnMut[A, R]) Close() { c.inner.Close() }

// SendAsyncFnOnce is a single-shot async container certified for handing
// across goroutines before its one invocation.
type SendAsyncFnOnce[A, R any] struct {
	inner *AsyncFnOnce[A, R]
}

// CallAsync consumes and invokes the underlying container.
func (c *SendAsyncFnOnce[A, R]) CallAsync(arg A) *Pending[R] { return c.inner.CallAsync(arg) }

// Call consumes the underlying container and drives it to completion.
func (c *SendAsyncFnOnce[A, R]) Call(ctx context.Context, arg A) (R, error) {
	return c.inner.Call(ctx, arg)
}

// Close closes the underlying container.
func (c *SendAsyncFnOnce[A, R]) Close() { c.inner.Close() }
