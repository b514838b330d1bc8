// Package storage provides the placement backends for type-erased values.
//
// A slot holds exactly one erased value from construction until release.
// Where that value lives is the whole point of the package: callers choose,
// per container, between an inline slot with a fixed capacity, an exclusively
// owned heap cell, a reference-counted cell (single-goroutine or atomic), or
// an adaptive slot that stays inline while the value fits and falls back to
// the heap otherwise.
//
// # Contract
//
// Once a slot is constructed with a value of some concrete type T, every
// access through the slot must reinterpret it as T until release. Mixing
// types is a contract violation, not a checked condition: the dispatch tables
// built by the dynfn and asyncfn packages are the only code that touches the
// erased value, and they are built per concrete type, so a mismatch is
// unreachable through the public API.
//
// Releasing is driven by a ReleaseTable, built once per concrete type. It
// records whether the value has an observable destructor (the Disposer
// interface) and the layout used for placement decisions. Reference-counted
// slots run disposal through the refcount itself: the count, not the caller,
// decides when the value dies.
//
// # Failure policy
//
// There are no recoverable errors here. Constructing an inline slot with a
// value that exceeds its capacity, releasing a shared cell more times than it
// was retained, or taking a value out of a slot twice are programming errors
// and panic immediately.
package storage
