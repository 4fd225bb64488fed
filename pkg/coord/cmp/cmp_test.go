package cmp

import (
	"sort"
	"testing"

	"github.com/gojuno/morton/pkg/coord"
	"github.com/gojuno/morton/pkg/coord/gen"
)

func TestFindMissingTiles(t *testing.T) {
	act := []coord.Coord{{1, 0, 0}, {1, 1, 1}}
	sort.Sort(coord.ByZYX(act))
	missing := FindMissingTiles(gen.NewZoomRange(1, 1), gen.NewSlice(act))
	exp := []coord.Coord{{1, 1, 0}, {1, 0, 1}}
	if len(missing) != len(exp) {
		t.Fatalf("Expecting %v, got %v", exp, missing)
	}
	for i := range exp {
		if missing[i] != exp[i] {
			t.Errorf("Expecting %s at %d, got %s", exp[i], i, missing[i])
		}
	}
}

func TestFindMissingTilesByMorton(t *testing.T) {
	// includes a tile outside the expected zoom range, which is skipped
	act := []coord.Coord{{2, 3, 3}, {2, 0, 0}, {2, 2, 1}, {3, 0, 0}}
	sort.Sort(coord.ByMorton(act))
	missing := FindMissingTilesBy(gen.NewMortonRange(2, 2), gen.NewSlice(act), coord.Coord.LessMorton)
	if len(missing) != 13 {
		t.Fatalf("Expecting 13 missing tiles, got %d: %v", len(missing), missing)
	}
	for _, c := range missing {
		for _, a := range act {
			if c == a {
				t.Errorf("Present tile %s reported missing", c)
			}
		}
	}
	for i := 1; i < len(missing); i++ {
		if !missing[i-1].LessMorton(missing[i]) {
			t.Errorf("Expecting missing tiles in Z-order, got %s before %s", missing[i-1], missing[i])
		}
	}
}

func TestFindMissingTilesNone(t *testing.T) {
	var act []coord.Coord
	g := gen.NewMortonRange(0, 2)
	for c := g.Next(); c != nil; c = g.Next() {
		act = append(act, *c)
	}
	missing := FindMissingTilesBy(gen.NewMortonRange(0, 2), gen.NewSlice(act), coord.Coord.LessMorton)
	if len(missing) != 0 {
		t.Errorf("Expecting no missing tiles, got %v", missing)
	}
}
