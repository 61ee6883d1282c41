package game

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SearchDepth is the number of plies the lookahead policy explores for a board size.
func SearchDepth(size int) int {
	switch size {
	case 3:
		return 9
	case 4:
		return 5
	case 5:
		return 4
	default:
		return 3
	}
}

// MoveScore is the aggregated evaluation of one candidate move.
//
// Value is the minimax outcome under the search bound: positive when the engine
// forces a win, negative when it cannot avoid a loss, 0 for a draw or an
// undecided line. Its magnitude is the number of plies left when the game ends,
// so faster wins and slower losses rank higher. Wins sums the outcome (+1, -1
// or 0) of every finished game in the subtree, Weight sums the positional
// weights of every move in it.
type MoveScore struct {
	Move   CellRef `json:"move"`
	Value  int     `json:"value"`
	Wins   int     `json:"wins"`
	Weight int     `json:"weight"`
}

func (s MoveScore) better(o MoveScore) bool {
	if s.Value != o.Value {
		return s.Value > o.Value
	}
	if s.Wins != o.Wins {
		return s.Wins > o.Wins
	}
	return s.Weight > o.Weight
}

// Analyze scores every move the lookahead policy would consider for the engine.
// Root moves are searched in parallel; the board itself is only read.
func (b *Board) Analyze() []MoveScore {
	depth := SearchDepth(b.geo.Size)
	moves := b.candidates(b.engineSide)
	scores := make([]MoveScore, len(moves))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			scores[i] = b.scoreMove(m, b.engineSide, depth)
			return nil
		})
	}
	_ = g.Wait()
	return scores
}

func (b *Board) pickLookahead() CellRef {
	scores := b.Analyze()
	best := []MoveScore{scores[0]}
	for _, s := range scores[1:] {
		switch {
		case s.better(best[0]):
			best = []MoveScore{s}
		case !best[0].better(s):
			best = append(best, s)
		}
	}
	return best[b.rng.Intn(len(best))].Move
}

// candidates never consults the rng, which keeps parallel branches independent.
func (b *Board) candidates(side Cell) []CellRef {
	if moves := b.PickTacticalMoves(side, false); len(moves) > 0 {
		return moves
	}
	return b.Legal()
}

func (b *Board) scoreMove(move CellRef, side Cell, depth int) MoveScore {
	next := b.Clone()
	next.PlaceMark(move, side)
	s := MoveScore{Move: move, Weight: b.geo.Weight(move)}
	if winner, over := next.Result(); over {
		s.Wins = b.outcome(winner)
		s.Value = s.Wins * depth
		return s
	}
	if depth <= 1 {
		return s
	}

	reply := side.Opposite()
	for k, m := range next.candidates(reply) {
		child := next.scoreMove(m, reply, depth-1)
		s.Wins += child.Wins
		s.Weight += child.Weight
		switch {
		case k == 0:
			s.Value = child.Value
		case reply == b.engineSide && child.Value > s.Value:
			s.Value = child.Value
		case reply != b.engineSide && child.Value < s.Value:
			s.Value = child.Value
		}
	}
	return s
}

func (b *Board) outcome(winner Cell) int {
	switch winner {
	case b.engineSide:
		return 1
	case Empty:
		return 0
	default:
		return -1
	}
}
