package game

import (
	"fmt"
	"strings"
)

// Strategy is one of the engine's move selection policies.
type Strategy int

const (
	Random Strategy = iota
	WeightedRandom
	Hesitant
	Heuristic
	DrawMaster
	Lookahead
)

var strategyNames = [...]string{"random", "weighted", "hesitant", "heuristic", "drawmaster", "lookahead"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

func ParseStrategy(s string) (Strategy, error) {
	for i, name := range strategyNames {
		if strings.EqualFold(s, name) {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

// Difficulty is the player facing setting; each level maps onto a Strategy.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium", "med":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) Strategy() Strategy {
	switch d {
	case Hard:
		return Lookahead
	case Medium:
		return Heuristic
	default:
		return Hesitant
	}
}

// Choose picks the engine's next move without playing it.
// It panics with ErrNoLegalMoves on a full board.
func (b *Board) Choose(s Strategy) CellRef {
	legal := b.Legal()
	if len(legal) == 0 {
		panic(ErrNoLegalMoves)
	}
	switch s {
	case Random:
		return b.pickRandom(legal)
	case WeightedRandom:
		return b.pickWeighted(legal)
	case Hesitant:
		return b.pickHesitant(legal)
	case Heuristic:
		if moves := b.PickTacticalMoves(b.engineSide, true); len(moves) > 0 {
			return b.pickWeighted(moves)
		}
		return b.pickHesitant(legal)
	case DrawMaster:
		moves := b.PickTacticalMoves(b.engineSide, false)
		if len(moves) == 0 {
			moves = legal
		}
		return b.pickWeighted(moves)
	case Lookahead:
		return b.pickLookahead()
	default:
		panic(fmt.Errorf("unknown strategy %d", int(s)))
	}
}

// CPUMove chooses a move with s and plays it for the engine side.
func (b *Board) CPUMove(s Strategy) CellRef {
	ref := b.Choose(s)
	b.PlaceMark(ref, b.engineSide)
	return ref
}

// MaxWeight filters refs down to those with the highest positional weight.
func (b *Board) MaxWeight(refs []CellRef) []CellRef {
	best, out := -1, []CellRef(nil)
	for _, r := range refs {
		w := b.geo.Weight(r)
		switch {
		case w > best:
			best, out = w, []CellRef{r}
		case w == best:
			out = append(out, r)
		}
	}
	return out
}

func (b *Board) pickRandom(refs []CellRef) CellRef {
	return refs[b.rng.Intn(len(refs))]
}

func (b *Board) pickWeighted(refs []CellRef) CellRef {
	return b.pickRandom(b.MaxWeight(refs))
}

func (b *Board) pickHesitant(refs []CellRef) CellRef {
	if b.coin() {
		return b.pickRandom(refs)
	}
	return b.pickWeighted(refs)
}
