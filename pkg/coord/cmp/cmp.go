package cmp

import (
	"github.com/gojuno/morton/pkg/coord"
	"github.com/gojuno/morton/pkg/coord/gen"
)

// FindMissingTiles compares two coordinate generators to find the missing tiles.
// It assumes that the first generator is the exhaustive list of what's
// expected, and reports the coordinates that are missing from the second
// generator. These generators must yield tiles in sorted order.
func FindMissingTiles(exp gen.Generator, act gen.Generator) []coord.Coord {
	return FindMissingTilesBy(exp, act, coord.Coord.LessZYX)
}

// FindMissingTilesBy is FindMissingTiles for generators sharing any sort
// order, given by less. Use coord.Coord.LessMorton with gen.NewMortonRange
// for tiles listed in Z-order.
func FindMissingTilesBy(exp gen.Generator, act gen.Generator, less func(a, b coord.Coord) bool) []coord.Coord {
	var result []coord.Coord
	expC := exp.Next()
	actC := act.Next()
	for {
		if expC == nil {
			break
		}
		if actC == nil || less(*expC, *actC) {
			result = append(result, *expC)
			expC = exp.Next()
		} else if less(*actC, *expC) {
			// unexpected tile, skip it
			actC = act.Next()
		} else {
			expC = exp.Next()
			actC = act.Next()
		}
	}
	return result
}
