package pack

import (
	"fmt"

	"github.com/gojuno/morton/pkg/coord"
	"github.com/gojuno/morton/pkg/morton"
)

var u32Codec = morton.MustNew(2, 14)

// ToU32 will pack a coordinate into a u32, zoom above the interleaved x and
// y. The maximum zoom handled is 14. Coordinates with a higher zoom will
// result in an error.
func ToU32(c coord.Coord) (uint32, error) {
	if c.Z > 14 {
		return 0, fmt.Errorf("cannot pack coordinate into u32, z=%d > 14", c.Z)
	}
	if err := checkInZoom(c); err != nil {
		return 0, err
	}
	key, err := u32Codec.Pack2(uint64(c.X), uint64(c.Y))
	if err != nil {
		return 0, fmt.Errorf("cannot pack coordinate %s into u32: %w", c, err)
	}
	return uint32(c.Z<<28) | uint32(key), nil
}

// FromU32 will take a u32 and return a coordinate from that representation.
// It's expected that the u32 was created from a call to ToU32.
func FromU32(val uint32) coord.Coord {
	x, y := u32Codec.Unpack2(uint64(val & (1<<28 - 1)))
	return coord.Coord{
		Z: uint((val >> 28) & ((1 << 4) - 1)),
		X: uint(x),
		Y: uint(y),
	}
}
