package storage

// Slot is the storage backend contract. A slot holds exactly one erased value
// from construction until release; Get hands back the untyped address of that
// value for dispatch tables to reinterpret.
type Slot interface {
	// Get returns the erased value. Calling Get after release, or after the
	// value was taken out, is a contract violation.
	Get() any

	// Release tears the slot down, running the table's dispose hook on the
	// value if it is still owned. Releasing the same slot twice is harmless
	// for plain slots and panics for reference-counted ones once the count
	// underflows.
	Release(tab *ReleaseTable)
}

// MutSlot is a slot granting exclusive, mutable access. Required by the
// by-exclusive-reference and by-value-once conventions, and by future
// storage.
type MutSlot interface {
	Slot

	// Take moves the value out, logically emptying the slot. Ownership of
	// the value transfers to the caller: a subsequent Release runs no
	// dispose hook. Taking twice panics.
	Take() any
}

// SendSlot marks slots that may be handed across goroutines. Whether the
// value inside is itself safe to share is a separate assertion, made by the
// thread-safety wrappers in dynfn and asyncfn.
type SendSlot interface {
	Slot
	sendSlot()
}

// Maker constructs a slot around an erased value whose layout is known at
// the (generic) construction site. Containers select their backend by value
// through a Maker rather than by type.
type Maker func(v any, lay Layout) MutSlot

// BoxedIn places the value in an exclusively owned heap cell.
func BoxedIn(v any, _ Layout) MutSlot {
	return NewBoxed(v)
}

// InlineIn returns a Maker placing values in an inline slot of the given
// capacity. Values exceeding the capacity are rejected at construction.
func InlineIn(cap Capacity) Maker {
	return func(v any, lay Layout) MutSlot {
		return NewInline(v, lay, cap)
	}
}

// AdaptiveIn returns a Maker that keeps values inline while they fit the
// capacity and falls back to a heap cell otherwise.
func AdaptiveIn(cap Capacity) Maker {
	return func(v any, lay Layout) MutSlot {
		return NewAdaptive(v, lay, cap)
	}
}

// Moved pins a slot whose value is being read out by a single-shot call.
// Releasing through the guard skips disposal: ownership already transferred
// to the caller, but the slot itself must still be reclaimed exactly once.
type Moved struct {
	slot MutSlot
}

// MoveOut takes the value out of the slot and returns it alongside the guard
// responsible for reclaiming the emptied slot.
func MoveOut(slot MutSlot) (any, Moved) {
	return slot.Take(), Moved{slot: slot}
}

// Release reclaims the emptied slot. The dispose hook never runs here; the
// moved-out value is owned, and destroyed or kept, by whoever took it.
func (m Moved) Release(tab *ReleaseTable) {
	m.slot.Release(tab)
}
