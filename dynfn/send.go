package dynfn

import (
	"github.com/on-the-ground/dyn_fn_go/storage"
)

// The thread-safety layer is deliberately thin: a Send* wrapper adds no
// behavior, it is an assertion that the wrapped container may cross
// goroutines. The storage half of that assertion is checked (the backend
// must be certified); the callable half is the constructor caller's
// obligation, exactly like any other value shared between goroutines.

func mustBeSendSlot(s storage.Slot) {
	if _, ok := s.(storage.SendSlot); !ok {
		panic("dynfn: storage backend not certified for cross-goroutine use")
	}
}

// SendFn is a by-reference container certified for cross-goroutine use.
// Read-only invocations may run concurrently from multiple goroutines.
type SendFn[A, R any] struct {
	inner *Fn[A, R]
}

// Call invokes the underlying container.
func (c *SendFn[A, R]) Call(arg A) R { return c.inner.Call(arg) }

// Clone clones the underlying container; see Fn.Clone.
func (c *SendFn[A, R]) Clone() *SendFn[A, R] {
	return &SendFn[A, R]{inner: c.inner.Clone()}
}

// Close closes the underlying container.
func (c *SendFn[A, R]) Close() { c.inner.Close() }

// SendFnMut is a by-exclusive-reference container certified for handing
// across goroutines. It may move between goroutines; it must never be
// invoked from two at once.
type SendFnMut[A, R any] struct {
	inner *FnMut[A, R]
}

// Call invokes the underlying container.
func (c *SendFnMut[A, R]) Call(arg A) R { return c.inner.Call(arg) }

// Close closes the underlying container.
func (c *SendFnMut[A, R]) Close() { c.inner.Close() }

// SendFnOnce is a single-shot container certified for handing across
// goroutines before its one invocation.
type SendFnOnce[A, R any] struct {
	inner *FnOnce[A, R]
}

// Call consumes and invokes the underlying container.
func (c *SendFnOnce[A, R]) Call(arg A) R { return c.inner.Call(arg) }

// Close closes the underlying container.
func (c *SendFnOnce[A, R]) Close() { c.inner.Close() }
