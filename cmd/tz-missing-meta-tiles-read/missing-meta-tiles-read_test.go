package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/gojuno/morton/pkg/coord"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func runFind(in []coord.Coord, minZoom, maxZoom uint, present bool) []coord.Coord {
	coordsChan := make(chan []coord.Coord, 1)
	outputChan := make(chan []coord.Coord, 16)
	coordsChan <- in
	close(coordsChan)
	go findCoords(coordsChan, outputChan, minZoom, maxZoom, present)
	var result []coord.Coord
	for cs := range outputChan {
		result = append(result, cs...)
	}
	return result
}

func TestDecodeCoords(t *testing.T) {
	in := "1/0/1\nbogus\n2/3/3\n2/0000000000000009.zip\n2/0000000000000010.zip\n"
	coords, err := decodeCoords(strings.NewReader(in), "key")
	if err != nil {
		t.Fatal(err)
	}
	exp := []coord.Coord{{Z: 1, X: 0, Y: 1}, {Z: 2, X: 3, Y: 3}, {Z: 2, X: 1, Y: 2}}
	if len(coords) != len(exp) {
		t.Fatalf("Expecting %v, got %v", exp, coords)
	}
	for i, c := range exp {
		if coords[i] != c {
			t.Errorf("Expecting %s at %d, got %s", c, i, coords[i])
		}
	}
}

func TestFindMissing(t *testing.T) {
	found := []coord.Coord{
		{Z: 0, X: 0, Y: 0},
		{Z: 1, X: 0, Y: 0},
		{Z: 1, X: 1, Y: 1},
		{Z: 5, X: 3, Y: 3},
	}
	missing := runFind(found, 0, 1, false)
	exp := []coord.Coord{{Z: 1, X: 1, Y: 0}, {Z: 1, X: 0, Y: 1}}
	if len(missing) != len(exp) {
		t.Fatalf("Expecting %v, got %v", exp, missing)
	}
	for i := range exp {
		if missing[i] != exp[i] {
			t.Errorf("Expecting %s at %d, got %s", exp[i], i, missing[i])
		}
	}
}

func TestFindPresent(t *testing.T) {
	found := []coord.Coord{
		{Z: 2, X: 3, Y: 3},
		{Z: 2, X: 0, Y: 1},
		{Z: 1, X: 1, Y: 1},
		{Z: 5, X: 3, Y: 3},
	}
	present := runFind(found, 0, 2, true)
	exp := []coord.Coord{{Z: 1, X: 1, Y: 1}, {Z: 2, X: 0, Y: 1}, {Z: 2, X: 3, Y: 3}}
	if len(present) != len(exp) {
		t.Fatalf("Expecting %v, got %v", exp, present)
	}
	for i := range exp {
		if present[i] != exp[i] {
			t.Errorf("Expecting %s at %d, got %s", exp[i], i, present[i])
		}
	}
}

func TestFindMissingBatches(t *testing.T) {
	// nothing found at zoom 6 means 4096 missing tiles, several batches
	missing := runFind(nil, 6, 6, false)
	if len(missing) != 4096 {
		t.Fatalf("Expecting 4096 missing tiles, got %d", len(missing))
	}
	for i := 1; i < len(missing); i++ {
		if !missing[i-1].LessMorton(missing[i]) {
			t.Fatalf("Expecting z-order, got %s before %s", missing[i-1], missing[i])
		}
	}
}

func TestPrintCoordsCompressed(t *testing.T) {
	coordsChan := make(chan []coord.Coord, 1)
	doneChan := make(chan error, 1)
	coordsChan <- []coord.Coord{{Z: 1, X: 0, Y: 1}, {Z: 3, X: 7, Y: 2}}
	close(coordsChan)

	var buf bytes.Buffer
	printCoords(coordsChan, doneChan, nopCloser{&buf}, true)
	if err := <-doneChan; err != nil {
		t.Fatal(err)
	}

	zr, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "1/0/1\n3/7/2\n" {
		t.Errorf("Unexpected output %#v", string(out))
	}
}
