package storage

// Boxed is the exclusively owned heap cell. The cell is allocated at
// construction and reclaimed by the collector once released; the release
// table's layout is what a manually managed runtime would deallocate with,
// and is kept for the adaptive predicate and introspection.
type Boxed struct {
	cell *boxedCell
}

type boxedCell struct {
	val   any
	empty bool
}

var (
	_ Slot     = (*Boxed)(nil)
	_ MutSlot  = (*Boxed)(nil)
	_ SendSlot = (*Boxed)(nil)
)

// NewBoxed places the value in a fresh exclusively owned cell.
func NewBoxed(v any) *Boxed {
	return &Boxed{cell: &boxedCell{val: v}}
}

// Get returns the stored value.
func (s *Boxed) Get() any {
	if s.cell == nil || s.cell.empty {
		panic("storage: access to released boxed slot")
	}
	return s.cell.val
}

// Take moves the value out, emptying the cell.
func (s *Boxed) Take() any {
	if s.cell == nil || s.cell.empty {
		panic("storage: boxed slot taken twice")
	}
	v := s.cell.val
	s.cell.val = nil
	s.cell.empty = true
	return v
}

// Release runs the dispose hook on a still-owned value and drops the cell.
func (s *Boxed) Release(tab *ReleaseTable) {
	if s.cell == nil {
		return
	}
	if !s.cell.empty {
		tab.run(s.cell.val)
		s.cell.val = nil
		s.cell.empty = true
	}
	s.cell = nil
}

func (s *Boxed) sendSlot() {}
