package coord

import (
	"sort"
	"testing"
)

func TestZoomTo(t *testing.T) {
	z4 := Coord{4, 8, 7}

	z2 := z4.ZoomTo(2)
	exp := Coord{2, 2, 1}
	if z2 != exp {
		t.Fail()
	}

	z5 := z2.ZoomTo(5)
	exp = Coord{5, 16, 8}
	if z5 != exp {
		t.Fail()
	}
}

func TestLessZYX(t *testing.T) {
	a := Coord{1, 2, 3}
	b := Coord{1, 3, 2}
	if a.LessZYX(b) {
		t.Fail()
	}
}

func TestSort(t *testing.T) {
	coords := []Coord{
		Coord{3, 2, 1},
		Coord{2, 1, 2},
		Coord{2, 2, 1},
		Coord{1, 2, 3},
	}
	sort.Sort(ByZYX(coords))
	for i := 0; i < len(coords)-1; i++ {
		a := coords[i]
		b := coords[i+1]
		if !a.LessZYX(b) {
			t.Fail()
		}
	}
}

func TestDecode(t *testing.T) {
	s := "3/2/1"
	c, err := Decode(s)
	exp := Coord{3, 2, 1}
	if c == nil || err != nil || *c != exp {
		t.Fail()
	}

	bad := "3/2/foo"
	c, err = Decode(bad)
	if c != nil || err == nil {
		t.Fail()
	}
}

func TestMorton(t *testing.T) {
	c := Coord{2, 1, 2}
	// x=01, y=10 interleave to y1 x1 y0 x0 = 1001
	if c.Morton() != 9 {
		t.Errorf("Expecting %s.Morton() to be 9, but got %d", c, c.Morton())
	}
	if FromMorton(2, 9) != c {
		t.Errorf("Expecting FromMorton(2, 9) to be %s, but got %s", c, FromMorton(2, 9))
	}

	max := Coord{32, 1<<32 - 1, 1<<32 - 1}
	if max.Morton() != ^uint64(0) {
		t.Errorf("Expecting %s.Morton() to have every bit set, got %x", max, max.Morton())
	}
	if FromMorton(32, max.Morton()) != max {
		t.Fail()
	}
}

func TestMortonChildren(t *testing.T) {
	parent := Coord{9, 300, 171}
	base := parent.Morton() * 4
	for i := uint64(0); i < 4; i++ {
		child := FromMorton(10, base+i)
		if child.ZoomTo(9) != parent {
			t.Errorf("Expecting child %s of key %d to have parent %s", child, base+i, parent)
		}
	}
}

func TestSortMorton(t *testing.T) {
	coords := []Coord{
		{3, 2, 1},
		{2, 1, 1},
		{2, 0, 1},
		{2, 1, 0},
		{1, 1, 1},
	}
	sort.Sort(ByMorton(coords))
	exp := []Coord{
		{1, 1, 1},
		{2, 1, 0},
		{2, 0, 1},
		{2, 1, 1},
		{3, 2, 1},
	}
	for i := range exp {
		if coords[i] != exp[i] {
			t.Errorf("Expecting %s at %d, but got %s", exp[i], i, coords[i])
		}
	}
}
