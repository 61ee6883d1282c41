package game

import (
	"reflect"
	"testing"
)

func TestWinLength(t *testing.T) {
	cases := []struct{ size, want int }{
		{2, 0}, {3, 3}, {4, 3}, {5, 4}, {6, 5}, {9, 5},
	}
	for _, c := range cases {
		if got := WinLength(c.size); got != c.want {
			t.Errorf("WinLength(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestEnumerateLineCount(t *testing.T) {
	cases := []struct{ size, want int }{
		{3, 8}, {4, 24}, {5, 28}, {6, 32},
	}
	for _, c := range cases {
		lines := Enumerate(c.size, WinLength(c.size))
		if len(lines) != c.want {
			t.Errorf("size %d: got %d lines, want %d", c.size, len(lines), c.want)
		}
	}
}

func TestEnumerateLinesAreContiguous(t *testing.T) {
	allowed := map[CellRef]bool{{0, 1}: true, {1, 0}: true, {1, 1}: true, {1, -1}: true}
	for size := MinSize; size <= MaxSize; size++ {
		l := WinLength(size)
		seen := map[string]bool{}
		for _, line := range Enumerate(size, l) {
			if len(line) != l {
				t.Fatalf("size %d: line %v has length %d", size, line, len(line))
			}
			step := CellRef{line[1].I - line[0].I, line[1].J - line[0].J}
			if !allowed[step] {
				t.Fatalf("size %d: line %v has step %v", size, line, step)
			}
			for k := 1; k < len(line); k++ {
				if !line[k].In(size) {
					t.Fatalf("size %d: %v out of bounds", size, line[k])
				}
				if (CellRef{line[k].I - line[k-1].I, line[k].J - line[k-1].J}) != step {
					t.Fatalf("size %d: line %v is not straight", size, line)
				}
			}
			key := line[0].String() + line[len(line)-1].String()
			if seen[key] {
				t.Fatalf("size %d: duplicate line %v", size, line)
			}
			seen[key] = true
		}
	}
}

func TestEnumerateThreeByThree(t *testing.T) {
	want := []Line{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
		{{0, 0}, {1, 1}, {2, 2}},
	}
	if got := Enumerate(3, 3); !reflect.DeepEqual(got, want) {
		t.Fatalf("Enumerate(3, 3) = %v, want %v", got, want)
	}
}

func TestEnumerateIsDeterministic(t *testing.T) {
	if !reflect.DeepEqual(Enumerate(6, 5), Enumerate(6, 5)) {
		t.Fatalf("two enumerations of the same grid differ")
	}
}

func TestEnumerateNoWinPossible(t *testing.T) {
	if lines := Enumerate(3, 4); len(lines) != 0 {
		t.Fatalf("expected no lines when win length exceeds size, got %d", len(lines))
	}
	if lines := Enumerate(4, 0); len(lines) != 0 {
		t.Fatalf("expected no lines for zero win length, got %d", len(lines))
	}
}

func TestEnumerateDiagonalWindows(t *testing.T) {
	// the main diagonal of a 4x4 board holds two windows of three
	lines := Enumerate(4, 3)
	var found int
	for _, line := range lines {
		if line[0].I == line[0].J && line[1].I == line[1].J && line[2].I == line[2].J {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected 2 windows on the main diagonal, got %d", found)
	}
}
