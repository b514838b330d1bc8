package storage

// Inline is the fixed-capacity slot. Its capacity and alignment bound are
// construction-time constants; a value whose layout exceeds them is rejected
// by panic before the slot ever exists. There is no runtime recovery path:
// backend selection is the caller's responsibility, checked once, up front.
//
// An inline slot must be treated as non-relocatable once constructed: the
// address it hands out may have been captured by an in-flight computation.
// Constructors therefore return pointers, and the slot is never copied by
// the engine.
type Inline struct {
	val   any
	cap   Capacity
	empty bool
}

var (
	_ Slot     = (*Inline)(nil)
	_ MutSlot  = (*Inline)(nil)
	_ SendSlot = (*Inline)(nil)
)

// NewInline places the value in a fresh inline slot. Panics if the value's
// layout exceeds the capacity.
func NewInline(v any, lay Layout, cap Capacity) *Inline {
	if !cap.Fits(lay) {
		panic("storage: value layout exceeds inline capacity")
	}
	return &Inline{val: v, cap: cap}
}

// Get returns the stored value.
func (s *Inline) Get() any {
	if s.empty {
		panic("storage: access to emptied inline slot")
	}
	return s.val
}

// Take moves the value out, emptying the slot.
func (s *Inline) Take() any {
	if s.empty {
		panic("storage: inline slot taken twice")
	}
	v := s.val
	s.val = nil
	s.empty = true
	return v
}

// Release runs the dispose hook on a still-owned value. Reclamation of the
// buffer itself is a no-op at this level: the slot lives wherever its owner
// placed it.
func (s *Inline) Release(tab *ReleaseTable) {
	if !s.empty {
		tab.run(s.val)
		s.val = nil
		s.empty = true
	}
}

// Capacity returns the construction-time capacity of the slot.
func (s *Inline) Capacity() Capacity { return s.cap }

func (s *Inline) sendSlot() {}
