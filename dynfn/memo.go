package dynfn

import (
	"sync"
	"sync/atomic"

	"github.com/on-the-ground/dyn_fn_go/storage"
)

// memoCache is a bounded two-generation cache. Stores land in the head
// generation; once it fills, the other generation is emptied and becomes
// the head, so entries age out without a sweeper. Lookups fall back to
// the previous generation, which keeps warm entries alive across one
// rotation.
type memoCache[A comparable, R any] struct {
	gens    [2]*sync.Map
	head    uint32
	size    atomic.Uint32
	maxSize uint32
}

func newMemoCache[A comparable, R any](maxSize uint32) *memoCache[A, R] {
	if maxSize == 0 {
		panic("dynfn: memo capacity must be greater than 0")
	}
	return &memoCache[A, R]{
		gens:    [2]*sync.Map{{}, {}},
		maxSize: maxSize,
	}
}

func (c *memoCache[A, R]) load(key A) (R, bool) {
	head := atomic.LoadUint32(&c.head)
	v, ok := c.gens[head].Load(key)
	if !ok {
		v, ok = c.gens[1-head].Load(key)
		if !ok {
			var zero R
			return zero, false
		}
	}
	return v.(R), true
}

func (c *memoCache[A, R]) store(key A, value R) {
	if c.size.CompareAndSwap(c.maxSize, 0) {
		next := 1 - atomic.LoadUint32(&c.head)
		c.gens[next] = &sync.Map{}
		atomic.StoreUint32(&c.head, next)
	}
	c.gens[atomic.LoadUint32(&c.head)].Store(key, value)
	c.size.Add(1)
}

// memoized interposes the cache in front of a by-reference callable.
type memoized[A comparable, R any] struct {
	inner Callable[A, R]
	cache *memoCache[A, R]
}

func (m memoized[A, R]) Call(arg A) R {
	if v, ok := m.cache.load(arg); ok {
		return v
	}
	v := m.inner.Call(arg)
	m.cache.store(arg, v)
	return v
}

// Dispose forwards teardown to the wrapped callable.
func (m memoized[A, R]) Dispose() {
	if d, ok := m.inner.(storage.Disposer); ok {
		d.Dispose()
	}
}

// Memoize wraps a by-reference callable in a memo table keyed on the
// argument and bounded to maxEntries live stores per generation. The
// wrapped callable must be pure: recomputation after eviction must be
// observationally equivalent to the cached result.
//
// The returned callable is itself by-reference and erases like any
// other, so it can be handed to NewFn or FromSyncFn.
func Memoize[A comparable, R any](c Callable[A, R], maxEntries uint32) Callable[A, R] {
	return memoized[A, R]{
		inner: c,
		cache: newMemoCache[A, R](maxEntries),
	}
}

// NewMemoFn erases a memoized view of f. Unlike erasing the result of
// Memoize behind the interface, this keeps the concrete type visible to
// the dispatch table, so f's destructor still runs on Close.
func NewMemoFn[A comparable, R any, F Callable[A, R]](f F, maxEntries uint32) *Fn[A, R] {
	m := memoized[A, R]{
		inner: f,
		cache: newMemoCache[A, R](maxEntries),
	}
	return NewFn[A, R, memoized[A, R]](m)
}
