package pack

import (
	"fmt"
	"math/rand"
	"reflect"

	"github.com/gojuno/morton/pkg/coord"
)

// This contains test utility functions for testing in the pack package

func randomCoord(rand *rand.Rand, maxZoomInclusive uint) coord.Coord {
	zoom := uint(rand.Intn(int(maxZoomInclusive) + 1))
	dim := 1 << zoom
	return coord.Coord{
		Z: zoom,
		X: uint(rand.Intn(dim)),
		Y: uint(rand.Intn(dim)),
	}
}

func newValidCoordGenerator(maxZoomInclusive uint) func([]reflect.Value, *rand.Rand) {
	return func(values []reflect.Value, rand *rand.Rand) {
		if len(values) != 1 {
			panic(fmt.Errorf("unexpected number of values to gen: %d", len(values)))
		}
		c := randomCoord(rand, maxZoomInclusive)
		values[0] = reflect.ValueOf(&c)
	}
}

// newValidCoordPairGenerator yields two coordinates, often at the same zoom
// so that comparisons exercise the Z-order part of the key.
func newValidCoordPairGenerator(maxZoomInclusive uint) func([]reflect.Value, *rand.Rand) {
	return func(values []reflect.Value, rand *rand.Rand) {
		if len(values) != 2 {
			panic(fmt.Errorf("unexpected number of values to gen: %d", len(values)))
		}
		a := randomCoord(rand, maxZoomInclusive)
		b := randomCoord(rand, maxZoomInclusive)
		if rand.Intn(2) == 0 {
			dim := 1 << a.Z
			b = coord.Coord{Z: a.Z, X: uint(rand.Intn(dim)), Y: uint(rand.Intn(dim))}
		}
		values[0] = reflect.ValueOf(&a)
		values[1] = reflect.ValueOf(&b)
	}
}
