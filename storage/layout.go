package storage

import "unsafe"

var wordSize = unsafe.Sizeof(uintptr(0))

// Layout describes the size and alignment of a concrete type, as used for
// inline-capacity checks and the adaptive placement predicate.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{
		Size:  unsafe.Sizeof(zero),
		Align: unsafe.Alignof(zero),
	}
}

// Capacity bounds what an inline slot can hold.
type Capacity struct {
	Size  uintptr // default: one word
	Align uintptr // default: word alignment
}

// NewCapacity normalizes a capacity, clamping zero fields to the word-sized
// defaults.
func NewCapacity(size, align uintptr) Capacity {
	if size == 0 {
		size = wordSize
	}
	if align == 0 {
		align = wordSize
	}
	return Capacity{Size: size, Align: align}
}

// DefaultCapacity is the capacity of an inline callable slot: one word.
func DefaultCapacity() Capacity {
	return Capacity{Size: wordSize, Align: wordSize}
}

// DefaultFutureCapacity is the capacity used for future slots by default:
// sixteen words, enough for most suspendable computations to stay inline.
func DefaultFutureCapacity() Capacity {
	return Capacity{Size: 16 * wordSize, Align: wordSize}
}

// Fits reports whether a value with the given layout can be placed inline
// within the capacity.
func (c Capacity) Fits(lay Layout) bool {
	return lay.Size <= c.Size && lay.Align <= c.Align
}
