package coord

import "math/bits"

type bitset struct {
	words []uint64
}

const (
	bitsPerWord = 64
	// MaxCoordSetZoom is the deepest zoom a CoordSet can hold. A zoom 16 set
	// is 4^16 bits, 512MiB, which is already more than we need.
	MaxCoordSetZoom = 16
)

func newBitset(zoom uint) *bitset {
	if zoom > MaxCoordSetZoom {
		panic("Zoom levels > 16 are not currently supported by coord.bitset")
	}

	// one bit per tile, indexed by the tile's morton key
	numBits := uint64(1) << (2 * zoom)

	// round up to whole words
	numWords := (numBits + bitsPerWord - 1) / bitsPerWord
	return &bitset{make([]uint64, numWords)}
}

func (b *bitset) Get(idx uint64) bool {
	w := b.words[idx/bitsPerWord]
	return (w>>(idx%bitsPerWord))&1 == 1
}

func (b *bitset) Set(idx uint64, val bool) {
	wordIdx := idx / bitsPerWord
	bit := uint64(1) << (idx % bitsPerWord)
	if val {
		b.words[wordIdx] |= bit
	} else {
		b.words[wordIdx] &^= bit
	}
}

// Count returns the number of set bits.
func (b *bitset) Count() uint64 {
	var n uint64
	for _, w := range b.words {
		n += uint64(bits.OnesCount64(w))
	}
	return n
}

// CoordSet is a set of tile coordinates, stored as one bitset per zoom. Bits
// are laid out in Z-order, so a tile and its spatial neighbours usually share
// a word, and each aligned 8x8 block of tiles fills exactly one word.
type CoordSet struct {
	zooms map[uint]*bitset
}

// NewCoordSet returns an empty set. Bitsets are allocated per zoom on the
// first Set of a tile at that zoom.
func NewCoordSet() *CoordSet {
	return &CoordSet{make(map[uint]*bitset)}
}

// Get reports whether c is in the set.
func (s *CoordSet) Get(c Coord) bool {
	b, ok := s.zooms[c.Z]
	if !ok {
		return false
	}
	return b.Get(c.Morton())
}

// Set adds c to the set, or removes it when val is false. It panics if c.Z is
// deeper than MaxCoordSetZoom.
func (s *CoordSet) Set(c Coord, val bool) {
	b, ok := s.zooms[c.Z]
	if !ok {
		if !val {
			return
		}
		b = newBitset(c.Z)
		s.zooms[c.Z] = b
	}
	b.Set(c.Morton(), val)
}

// Len returns the number of coordinates in the set.
func (s *CoordSet) Len() uint64 {
	var n uint64
	for _, b := range s.zooms {
		n += b.Count()
	}
	return n
}

// Each calls fn for every coordinate in the set at zoom z, in Z-order, until
// fn returns false.
func (s *CoordSet) Each(z uint, fn func(Coord) bool) {
	b, ok := s.zooms[z]
	if !ok {
		return
	}
	for wordIdx, w := range b.words {
		for ; w != 0; w &= w - 1 {
			key := uint64(wordIdx)*bitsPerWord + uint64(bits.TrailingZeros64(w))
			if !fn(FromMorton(z, key)) {
				return
			}
		}
	}
}
