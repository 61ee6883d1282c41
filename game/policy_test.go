package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	for s := Random; s <= Lookahead; s++ {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStrategy("perfect"); err == nil {
		t.Fatalf("expected an error for an unknown strategy")
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want Difficulty
		s    Strategy
	}{
		{"easy", Easy, Hesitant},
		{"MED", Medium, Heuristic},
		{" medium ", Medium, Heuristic},
		{"Hard", Hard, Lookahead},
	}
	for _, c := range cases {
		d, err := ParseDifficulty(c.in)
		if err != nil || d != c.want || d.Strategy() != c.s {
			t.Fatalf("ParseDifficulty(%q) = %v (%v), %v", c.in, d, d.Strategy(), err)
		}
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Fatalf("expected an error for an unknown difficulty")
	}
}

func randomPosition(t *testing.T, size, marks int, seed int64) *Board {
	t.Helper()
	b := mustBoard(t, size)
	r := rand.New(rand.NewSource(seed))
	mark := X
	for k := 0; k < marks; k++ {
		legal := b.Legal()
		place(t, b, mark, legal[r.Intn(len(legal))])
		mark = mark.Opposite()
	}
	return b
}

func TestEveryStrategyReturnsLegalMove(t *testing.T) {
	for _, s := range []Strategy{Random, WeightedRandom, Hesitant, Heuristic, DrawMaster} {
		for size := MinSize; size <= MaxSize; size++ {
			for seed := int64(0); seed < 10; seed++ {
				b := randomPosition(t, size, size, seed)
				ref := b.Choose(s)
				if !ref.In(size) || b.At(ref) != Empty {
					t.Fatalf("%v on size %d picked illegal %v", s, size, ref)
				}
			}
		}
	}
}

func TestWeightedRandomPicksMaxWeight(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		for seed := int64(0); seed < 20; seed++ {
			b := randomPosition(t, size, int(seed)%(size*size/2), seed)
			max := 0
			for _, r := range b.Legal() {
				if w := b.Weight(r); w > max {
					max = w
				}
			}
			if ref := b.Choose(WeightedRandom); b.Weight(ref) != max {
				t.Fatalf("size %d seed %d: picked %v with weight %d, max is %d", size, seed, ref, b.Weight(ref), max)
			}
		}
	}
}

func TestWeightedRandomOpensInCentre(t *testing.T) {
	b := mustBoard(t, 3)
	if ref := b.Choose(WeightedRandom); ref != (CellRef{1, 1}) {
		t.Fatalf("expected the centre on an empty board, got %v", ref)
	}
}

func TestDrawMasterBlocks(t *testing.T) {
	b := mustBoard(t, 3)
	place(t, b, X, CellRef{0, 0}, CellRef{0, 1})
	place(t, b, O, CellRef{2, 2})
	for k := 0; k < 20; k++ {
		if ref := b.Choose(DrawMaster); ref != (CellRef{0, 2}) {
			t.Fatalf("expected a block at (0, 2), got %v", ref)
		}
	}
}

func TestHeuristicMovesAreLegal(t *testing.T) {
	b := mustBoard(t, 4)
	place(t, b, X, CellRef{0, 0}, CellRef{0, 1})
	seen := map[CellRef]bool{}
	for k := 0; k < 100; k++ {
		ref := b.Choose(Heuristic)
		if b.At(ref) != Empty {
			t.Fatalf("heuristic picked occupied %v", ref)
		}
		seen[ref] = true
	}
	if !seen[CellRef{0, 2}] {
		t.Fatalf("heuristic never blocked at (0, 2) in 100 tries")
	}
}

func TestCPUMovePlacesEngineMark(t *testing.T) {
	b := mustBoard(t, 3)
	b.SetEngineSide(X)
	ref := b.CPUMove(Random)
	if b.At(ref) != X {
		t.Fatalf("expected engine mark X at %v", ref)
	}
	if len(b.Legal()) != 8 {
		t.Fatalf("expected exactly one move to be played")
	}
}

func TestChooseOnFullBoardPanics(t *testing.T) {
	b := randomPosition(t, 3, 9, 3)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoLegalMoves) {
			t.Fatalf("expected ErrNoLegalMoves panic, got %v", r)
		}
	}()
	b.Choose(Random)
}
