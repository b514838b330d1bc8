package storage

import "sync/atomic"

// SharedLocal is the reference-counted cell with a plain counter.
//
// IMPORTANT: this slot is intentionally NOT goroutine-safe. It is designed
// with the assumption that every handle to the cell lives in a single
// goroutine and a single execution scope. Sharing it across goroutines leads
// to undefined behavior, including data races on the count. If cross-
// goroutine sharing is needed, use SharedAtomic.
type SharedLocal struct {
	cell *localCell
}

type localCell struct {
	val  any
	refs int
}

var _ Slot = (*SharedLocal)(nil)

// NewSharedLocal places the value in a fresh cell with one reference.
func NewSharedLocal(v any) *SharedLocal {
	return &SharedLocal{cell: &localCell{val: v, refs: 1}}
}

// Get returns the stored value.
func (s *SharedLocal) Get() any {
	if s.cell == nil || s.cell.refs <= 0 {
		panic("storage: access to released shared slot")
	}
	return s.cell.val
}

// Clone returns a new handle to the same cell, incrementing the count. The
// captured value is not copied.
func (s *SharedLocal) Clone() *SharedLocal {
	if s.cell == nil || s.cell.refs <= 0 {
		panic("storage: clone of released shared slot")
	}
	s.cell.refs++
	return &SharedLocal{cell: s.cell}
}

// Release decrements the count; the dispose hook runs when the last handle
// is dropped. The count, not the caller, decides when the value dies.
func (s *SharedLocal) Release(tab *ReleaseTable) {
	if s.cell == nil {
		return
	}
	cell := s.cell
	s.cell = nil
	cell.refs--
	switch {
	case cell.refs == 0:
		tab.run(cell.val)
		cell.val = nil
	case cell.refs < 0:
		panic("storage: shared slot released more times than retained")
	}
}

// SharedAtomic is the reference-counted cell safe to hand across goroutines.
// Counting uses an atomic increment/decrement discipline; the handle that
// observes the count reach zero runs the dispose hook.
type SharedAtomic struct {
	cell *atomicCell
}

type atomicCell struct {
	val  any
	refs atomic.Int64
}

var (
	_ Slot     = (*SharedAtomic)(nil)
	_ SendSlot = (*SharedAtomic)(nil)
)

// NewSharedAtomic places the value in a fresh cell with one reference.
func NewSharedAtomic(v any) *SharedAtomic {
	s := &SharedAtomic{cell: &atomicCell{}}
	s.cell.val = v
	s.cell.refs.Store(1)
	return s
}

// Get returns the stored value.
func (s *SharedAtomic) Get() any {
	if s.cell == nil || s.cell.refs.Load() <= 0 {
		panic("storage: access to released shared slot")
	}
	return s.cell.val
}

// Clone returns a new handle to the same cell, incrementing the count
// atomically. The captured value is not copied.
func (s *SharedAtomic) Clone() *SharedAtomic {
	if s.cell == nil {
		panic("storage: clone of released shared slot")
	}
	if s.cell.refs.Add(1) <= 1 {
		panic("storage: clone of released shared slot")
	}
	return &SharedAtomic{cell: s.cell}
}

// Release decrements the count; the handle that drops it to zero runs the
// dispose hook.
func (s *SharedAtomic) Release(tab *ReleaseTable) {
	if s.cell == nil {
		return
	}
	cell := s.cell
	s.cell = nil
	switch n := cell.refs.Add(-1); {
	case n == 0:
		tab.run(cell.val)
		cell.val = nil
	case n < 0:
		panic("storage: shared slot released more times than retained")
	}
}

func (s *SharedAtomic) sendSlot() {}
