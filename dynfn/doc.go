// Package dynfn provides type-erased callable containers with pluggable
// storage for the captured state.
//
// A container pairs one storage slot (see the storage package) with one
// dispatch table built per concrete callable type. The table is the erasure
// mechanism: it is constructed once, memoized for the life of the process,
// and referenced, never copied, by every container holding that type.
//
// # Calling conventions
//
// Three conventions, each its own container:
//
//   - Fn: by-reference. The captured state is never mutated; a container may
//     be invoked many times, concurrently with other read-only invocations
//     once certified by the thread-safety layer.
//   - FnMut: by-exclusive-reference. The captured state may be read and
//     written; the caller must serialize invocations.
//   - FnOnce: by-value-once. The captured state is consumed by the one
//     permitted invocation; a second invocation panics.
//
// # Lifecycle
//
// Containers are constructed from a concrete callable and a storage choice,
// invoked zero or more times (exactly once for FnOnce), and closed. Close
// releases the storage at most once, running the captured value's Dispose
// hook unless a single-shot invocation already consumed and destroyed it.
//
// Containers over reference-counted storage can be cloned; a clone shares
// the captured state and the dispatch table, and the state's Dispose hook
// runs only after the last handle is closed.
//
// # Delegation of safety
//
// The engine does not defend against contract violations it cannot make
// unreachable: invoking a closed container, sharing a FnMut across
// goroutines, or mixing a container with a foreign dispatch table are
// undefined. What can be checked cheaply at a boundary (single-shot reuse,
// inline capacity, refcount underflow) panics immediately.
package dynfn
