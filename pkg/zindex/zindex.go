// Package zindex is an ordered index of points keyed by their Morton code,
// answering box queries by walking the Z-order curve.
package zindex

import (
	"encoding/binary"
	"fmt"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/gojuno/morton/pkg/morton"
)

// Index maps points to values. Keys are the big-endian bytes of each point's
// code, so the radix tree iterates in Z-order.
//
// An Index is not safe for concurrent mutation. The tree underneath is
// immutable, so Snapshot is cheap and the returned Index can be read from
// any number of goroutines while the original keeps changing.
type Index struct {
	codec *morton.Morton64
	tree  *iradix.Tree
}

// New returns an empty index over points of the codec's layout.
func New(codec *morton.Morton64) *Index {
	return &Index{codec: codec, tree: iradix.New()}
}

func encodeKey(code uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], code)
	return key[:]
}

func decodeKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// Codec returns the codec the index keys points with.
func (ix *Index) Codec() *morton.Morton64 {
	return ix.codec
}

// Len returns the number of points in the index.
func (ix *Index) Len() int {
	return ix.tree.Len()
}

// Insert adds or replaces the value stored at point.
func (ix *Index) Insert(point []uint64, value interface{}) error {
	code, err := ix.codec.Pack(point...)
	if err != nil {
		return err
	}
	ix.tree, _, _ = ix.tree.Insert(encodeKey(code), value)
	return nil
}

// Get returns the value stored at point.
func (ix *Index) Get(point []uint64) (interface{}, bool, error) {
	code, err := ix.codec.Pack(point...)
	if err != nil {
		return nil, false, err
	}
	v, ok := ix.tree.Get(encodeKey(code))
	return v, ok, nil
}

// Delete removes point, reporting whether it was present.
func (ix *Index) Delete(point []uint64) (bool, error) {
	code, err := ix.codec.Pack(point...)
	if err != nil {
		return false, err
	}
	var ok bool
	ix.tree, _, ok = ix.tree.Delete(encodeKey(code))
	return ok, nil
}

// Snapshot returns an independent copy of the index sharing its storage.
func (ix *Index) Snapshot() *Index {
	return &Index{codec: ix.codec, tree: ix.tree}
}

// Walk calls fn for every point in Z-order until fn returns false.
func (ix *Index) Walk(fn func(point []uint64, value interface{}) bool) {
	it := ix.tree.Root().Iterator()
	for key, v, ok := it.Next(); ok; key, v, ok = it.Next() {
		if !fn(ix.codec.Unpack(decodeKey(key)), v) {
			return
		}
	}
}

// Query calls fn, in Z-order, for every point p with min[i] <= p[i] <= max[i]
// in every dimension, until fn returns false.
func (ix *Index) Query(min, max []uint64, fn func(point []uint64, value interface{}) bool) error {
	lo, err := ix.codec.Pack(min...)
	if err != nil {
		return err
	}
	hi, err := ix.codec.Pack(max...)
	if err != nil {
		return err
	}
	for i := range min {
		if min[i] > max[i] {
			return fmt.Errorf("%w: query minimum %d exceeds maximum %d in dimension %d",
				morton.ErrValueOutOfRange, min[i], max[i], i)
		}
	}

	root := ix.tree.Root()
	it := root.Iterator()
	it.SeekLowerBound(encodeKey(lo))
	for {
		key, v, ok := it.Next()
		if !ok {
			return nil
		}
		code := decodeKey(key)
		if code > hi {
			return nil
		}
		point := ix.codec.Unpack(code)
		if inBox(point, min, max) {
			if !fn(point, v) {
				return nil
			}
			continue
		}
		next, ok := ix.nextInBox(code, lo, hi)
		if !ok {
			return nil
		}
		it = root.Iterator()
		it.SeekLowerBound(encodeKey(next))
	}
}

func inBox(point, min, max []uint64) bool {
	for i, v := range point {
		if v < min[i] || v > max[i] {
			return false
		}
	}
	return true
}

// nextInBox returns the smallest code greater than code whose point lies in
// the box with corner codes lo and hi (the BIGMIN step of Tropf and Herzog).
// code must lie between lo and hi but outside the box.
func (ix *Index) nextInBox(code, lo, hi uint64) (uint64, bool) {
	dims := ix.codec.Dimensions()
	top := dims*ix.codec.Bits() - 1
	// bits belonging to dimension 0
	dimMask := ix.codec.Spread(^uint64(0) >> (64 - ix.codec.Bits()))

	var bigmin uint64
	found := false
	for p := int(top); p >= 0; p-- {
		bit := uint64(1) << uint(p)
		// bits of the same dimension below p
		below := (dimMask << (uint64(p) % dims)) & (bit - 1)

		switch {
		case code&bit == 0 && lo&bit == 0 && hi&bit != 0:
			bigmin = (lo &^ below) | bit
			found = true
			hi = (hi &^ bit) | below
		case code&bit == 0 && lo&bit != 0 && hi&bit != 0:
			return lo, true
		case code&bit != 0 && lo&bit == 0 && hi&bit == 0:
			return bigmin, found
		case code&bit != 0 && lo&bit == 0 && hi&bit != 0:
			lo = (lo &^ below) | bit
		}
	}
	return bigmin, found
}
