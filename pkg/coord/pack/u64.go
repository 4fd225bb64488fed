package pack

import (
	"fmt"

	"github.com/gojuno/morton/pkg/coord"
	"github.com/gojuno/morton/pkg/morton"
)

var u64Codec = morton.MustNew(2, 29)

// ToU64 will pack a coordinate into a u64: the zoom in the top bits above
// the interleaved x and y. The maximum zoom handled is 29. Coordinates with a
// higher zoom, or with x or y outside the zoom, will result in an error.
//
// Sorting the packed values orders tiles by zoom, then in Z-order.
func ToU64(c coord.Coord) (uint64, error) {
	if c.Z > 29 {
		return 0, fmt.Errorf("cannot pack coordinate into u64, z=%d > 29", c.Z)
	}
	if err := checkInZoom(c); err != nil {
		return 0, err
	}
	key, err := u64Codec.Pack2(uint64(c.X), uint64(c.Y))
	if err != nil {
		return 0, fmt.Errorf("cannot pack coordinate %s into u64: %w", c, err)
	}
	return (uint64(c.Z) << 58) | key, nil
}

// FromU64 will take a u64 and return a coordinate from that representation.
// It's expected that the u64 was created from a call to ToU64.
func FromU64(val uint64) coord.Coord {
	x, y := u64Codec.Unpack2(val & (1<<58 - 1))
	return coord.Coord{
		Z: uint((val >> 58) & ((1 << 5) - 1)),
		X: uint(x),
		Y: uint(y),
	}
}

func checkInZoom(c coord.Coord) error {
	dim := uint(1) << c.Z
	if c.X >= dim || c.Y >= dim {
		return fmt.Errorf("coordinate %s is outside zoom %d", c, c.Z)
	}
	return nil
}
