package storage

// Adaptive chooses Inline when the value's layout fits the capacity and
// falls back to Boxed otherwise. The choice is a construction-time predicate
// over size and alignment, stable for the life of the slot; IsInline exposes
// which variant was selected.
type Adaptive struct {
	inline *Inline
	boxed  *Boxed
}

var (
	_ Slot     = (*Adaptive)(nil)
	_ MutSlot  = (*Adaptive)(nil)
	_ SendSlot = (*Adaptive)(nil)
)

// NewAdaptive places the value inline if it fits, on the heap otherwise.
func NewAdaptive(v any, lay Layout, cap Capacity) *Adaptive {
	if cap.Fits(lay) {
		return &Adaptive{inline: NewInline(v, lay, cap)}
	}
	return &Adaptive{boxed: NewBoxed(v)}
}

// IsInline reports whether the inline variant was selected at construction.
func (s *Adaptive) IsInline() bool { return s.inline != nil }

// Get returns the stored value.
func (s *Adaptive) Get() any {
	if s.inline != nil {
		return s.inline.Get()
	}
	return s.boxed.Get()
}

// Take moves the value out of whichever variant was chosen.
func (s *Adaptive) Take() any {
	if s.inline != nil {
		return s.inline.Take()
	}
	return s.boxed.Take()
}

// Release dispatches to the chosen variant.
func (s *Adaptive) Release(tab *ReleaseTable) {
	if s.inline != nil {
		s.inline.Release(tab)
		return
	}
	s.boxed.Release(tab)
}

func (s *Adaptive) sendSlot() {}
