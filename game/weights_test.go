package game

import (
	"sync"
	"testing"
)

func TestWeightsSumToLineCells(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		g := NewGeometry(size, WinLength(size))
		sum := 0
		for _, row := range g.Weights() {
			for _, w := range row {
				sum += w
			}
		}
		if want := g.WinLength * len(g.Lines); sum != want {
			t.Errorf("size %d: weights sum to %d, want %d", size, sum, want)
		}
	}
}

func TestClassicWeights(t *testing.T) {
	g := NewGeometry(3, 3)
	want := [][]int{
		{3, 2, 3},
		{2, 4, 2},
		{3, 2, 3},
	}
	got := g.Weights()
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("weight at (%d, %d) = %d, want %d", i, j, got[i][j], want[i][j])
			}
		}
	}
	if w := g.Weight(CellRef{5, 5}); w != 0 {
		t.Fatalf("out of range weight should be 0, got %d", w)
	}
}

func TestGeometryCacheSharesBySize(t *testing.T) {
	c := NewGeometryCache()
	a, err := c.NewBoard(4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.NewBoard(4)
	if err != nil {
		t.Fatal(err)
	}
	if a.Geometry() != b.Geometry() {
		t.Fatalf("expected boards of the same size to share geometry")
	}
	d, err := c.NewBoard(5)
	if err != nil {
		t.Fatal(err)
	}
	if d.Geometry() == a.Geometry() || d.WinLength() != 4 || a.WinLength() != 3 {
		t.Fatalf("boards of different sizes must not share geometry")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 cached geometries, got %d", c.Len())
	}
	if _, err := c.NewBoard(7); err == nil {
		t.Fatalf("expected invalid size error from cache")
	}
}

func TestGeometryCacheConcurrentGet(t *testing.T) {
	c := NewGeometryCache()
	var wg sync.WaitGroup
	got := make([]*Geometry, 32)
	for k := range got {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			size := MinSize + k%4
			got[k] = c.Get(size, WinLength(size))
		}(k)
	}
	wg.Wait()
	for k, g := range got {
		if g.Size != MinSize+k%4 {
			t.Fatalf("goroutine %d got geometry for size %d", k, g.Size)
		}
		if g != got[k%4] {
			t.Fatalf("goroutine %d got a second geometry for size %d", k, g.Size)
		}
	}
}
