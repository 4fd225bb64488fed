package pack

import (
	"fmt"
	"math/bits"

	"github.com/gojuno/morton/pkg/coord"
	"github.com/gojuno/morton/pkg/morton"
)

var u32VarCodec = morton.MustNew(2, 15)

// ToU32Var will pack the coordinate into a u32 quadkey: a marker bit at
// 2*zoom followed by the interleaved x and y. The max coordinate zoom that
// can be handled is 15. An error is returned for coordinates with higher
// zooms.
//
// A tile's parent is its quadkey shifted right by two, and every descendant
// of a tile shares its quadkey as a prefix. For zooms < 15, you might want to
// consider the more straightforward ToU32 function instead.
func ToU32Var(c coord.Coord) (uint32, error) {
	if c.Z > 15 {
		return 0, fmt.Errorf("cannot pack coordinate into u32, z=%d > 15", c.Z)
	}
	if err := checkInZoom(c); err != nil {
		return 0, err
	}
	key, err := u32VarCodec.Pack2(uint64(c.X), uint64(c.Y))
	if err != nil {
		return 0, fmt.Errorf("cannot pack coordinate %s into u32: %w", c, err)
	}
	return uint32(1<<(2*c.Z)) | uint32(key), nil
}

// FromU32Var unpacks the u32 back into a coordinate. It's expected that the
// coordinate was originally packed with the ToU32Var function.
func FromU32Var(val uint32) (coord.Coord, error) {
	zeros := bits.LeadingZeros32(val)
	if zeros&1 == 0 {
		return coord.Coord{}, fmt.Errorf("tile value %d has %d leading zeros, which isn't valid", val, zeros)
	}
	z := uint((31 - zeros) >> 1)
	x, y := u32VarCodec.Unpack2(uint64(val) & (1<<(2*z) - 1))
	return coord.Coord{Z: z, X: uint(x), Y: uint(y)}, nil
}
