// Package asyncfn extends the dynfn erasure machinery to asynchronous
// callables: invoking one produces a suspendable computation whose concrete
// type is erased in turn, and whose state lives in a second, independently
// chosen storage slot.
//
// # Drive contract
//
// An invocation returns a Pending handle referencing the computation's slot
// through a future dispatch table (poll, release). An external scheduler
// drives the handle by calling Poll until it reports completion; polls for
// one handle must be sequential. The engine adds no suspension points of its
// own: the computation suspends only where it would have anyway.
//
// The handle's storage is released exactly once no matter how the driving
// scope exits: completion, early return, cancellation via context, or plain
// abandonment through Discard. Await packages that guarantee as a drive loop
// with a deferred release guard.
//
// # Synchronous fast path
//
// A container built from a synchronous callable advertises itself through
// IsSync and serves CallSync without ever materializing a computation. The
// false return of CallSync, "this callable is not synchronous", is the
// only error-like signal in the engine; CallTrySync falls back to the full
// async path in that case.
//
// By default the computation is stored adaptively with a sixteen-word inline
// capacity, so small computations stay inline and large ones fall back to
// the heap.
package asyncfn
