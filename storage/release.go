package storage

import "reflect"

// Disposer is the observable destructor of a captured value. Values that own
// external resources implement it; the engine guarantees Dispose runs exactly
// once per stored value, no matter which exit path releases the slot.
type Disposer interface {
	Dispose()
}

// ReleaseTable is the release descriptor of a dispatch table: built once per
// concrete type, referenced for the lifetime of every slot holding that type.
//
// The dispose hook is nil when the type has no observable destructor, in
// which case releasing a plain slot is pure bookkeeping. Reference-counted
// slots always go through their count regardless: the count governs when the
// hook runs, not whether releasing is needed.
type ReleaseTable struct {
	dispose func(any)
	layout  Layout
}

// NewReleaseTable builds the release descriptor for T.
func NewReleaseTable[T any]() *ReleaseTable {
	rt := &ReleaseTable{layout: LayoutOf[T]()}
	var zero T
	if _, ok := any(zero).(Disposer); ok {
		rt.dispose = func(v any) { v.(Disposer).Dispose() }
	}
	return rt
}

// NewReleaseTableOf builds the release descriptor for the dynamic type of v.
// Used where the concrete type is only known at runtime, as with the
// suspendable computation returned by an erased async callable.
func NewReleaseTableOf(v any) *ReleaseTable {
	rt := &ReleaseTable{}
	if v == nil {
		return rt
	}
	t := reflect.TypeOf(v)
	rt.layout = Layout{Size: t.Size(), Align: uintptr(t.Align())}
	if _, ok := v.(Disposer); ok {
		rt.dispose = func(x any) { x.(Disposer).Dispose() }
	}
	return rt
}

// Layout returns the layout recorded at build time.
func (rt *ReleaseTable) Layout() Layout { return rt.layout }

// Dispose runs the dispose hook on a value that was moved out of its slot.
// Ownership sits with the taker after MoveOut; this is how the taker honors
// the exactly-once contract when it destroys the value itself.
func (rt *ReleaseTable) Dispose(v any) { rt.run(v) }

// NeedsDispose reports whether the described type has an observable
// destructor.
func (rt *ReleaseTable) NeedsDispose() bool { return rt != nil && rt.dispose != nil }

// run invokes the dispose hook, if any, on a still-owned value.
func (rt *ReleaseTable) run(v any) {
	if rt != nil && rt.dispose != nil && v != nil {
		rt.dispose(v)
	}
}
