// Package morton interleaves the bits of several fixed-width integers into a
// single 64-bit Z-order code, and reverses the process.
//
// A Morton64 is built for a fixed number of dimensions and bits per
// dimension. Construction derives the shift/mask steps needed to spread a
// value's bits so they sit one dimension-count apart; packing ORs the spread
// values together, each offset by its dimension index. A Morton64 is immutable
// after New returns and may be shared between goroutines.
package morton

import (
	"fmt"
)

// Morton64 packs and unpacks codes for one (dimensions, bits) layout.
type Morton64 struct {
	dimensions uint64
	bits       uint64
	steps      []step
}

// New returns a codec for the given number of dimensions and bits per
// dimension. Both must be positive and their product must fit in 64 bits.
func New(dimensions, bits uint64) (*Morton64, error) {
	if dimensions == 0 || bits == 0 || dimensions > 64 || bits > 64 || dimensions*bits > 64 {
		return nil, fmt.Errorf("%w: can't make morton64 with %d dimensions and %d bits",
			ErrInvalidConfiguration, dimensions, bits)
	}
	return &Morton64{
		dimensions: dimensions,
		bits:       bits,
		steps:      buildSchedule(dimensions, bits),
	}, nil
}

// MustNew is like New but panics if the layout is invalid. It is meant for
// package level codecs with constant layouts.
func MustNew(dimensions, bits uint64) *Morton64 {
	m, err := New(dimensions, bits)
	if err != nil {
		panic(err)
	}
	return m
}

// Dimensions returns the number of values packed into each code.
func (m *Morton64) Dimensions() uint64 {
	return m.dimensions
}

// Bits returns the width of each dimension.
func (m *Morton64) Bits() uint64 {
	return m.bits
}

// String is the Morton64 Stringer implementation.
func (m *Morton64) String() string {
	return fmt.Sprintf("morton64(%dx%d)", m.dimensions, m.bits)
}

// maxValue is the largest unsigned value a single dimension can hold.
func (m *Morton64) maxValue() uint64 {
	return ^uint64(0) >> (64 - m.bits)
}

func (m *Morton64) dimensionsCheck(n int) error {
	if uint64(n) != m.dimensions {
		return fmt.Errorf("%w: morton64 with %d dimensions received %d values",
			ErrDimensionMismatch, m.dimensions, n)
	}
	return nil
}

func (m *Morton64) valueCheck(value uint64) error {
	if value > m.maxValue() {
		return fmt.Errorf("%w: morton64 with %d bits per dimension received %d to pack",
			ErrValueOutOfRange, m.bits, value)
	}
	return nil
}
