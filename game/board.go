package game

import (
	"math/rand"
	"strings"
	"time"
)

// Board owns the grid of one game. Geometry and rng are shared with clones.
type Board struct {
	geo        *Geometry
	grid       []Cell
	engineSide Cell
	rng        *rand.Rand
}

func NewBoard(size int) (*Board, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return newBoard(NewGeometry(size, WinLength(size))), nil
}

func checkSize(size int) error {
	if size < MinSize || size > MaxSize {
		return NewInvalidSizeError(size)
	}
	return nil
}

func newBoard(geo *Geometry) *Board {
	return &Board{
		geo:        geo,
		grid:       make([]Cell, geo.Size*geo.Size),
		engineSide: O,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *Board) Size() int           { return b.geo.Size }
func (b *Board) WinLength() int      { return b.geo.WinLength }
func (b *Board) Lines() []Line       { return b.geo.Lines }
func (b *Board) Geometry() *Geometry { return b.geo }
func (b *Board) EngineSide() Cell    { return b.engineSide }
func (b *Board) HumanSide() Cell     { return b.engineSide.Opposite() }

func (b *Board) Weight(ref CellRef) int { return b.geo.Weight(ref) }

// SetEngineSide picks the mark the automated player uses. Empty is ignored.
func (b *Board) SetEngineSide(side Cell) {
	if side == X || side == O {
		b.engineSide = side
	}
}

// SetRand replaces the source used for tie-breaks and lenient coin flips.
func (b *Board) SetRand(r *rand.Rand) {
	if r != nil {
		b.rng = r
	}
}

func (b *Board) At(ref CellRef) Cell {
	if !ref.In(b.geo.Size) {
		return Empty
	}
	return b.grid[ref.I*b.geo.Size+ref.J]
}

// PlaceMark puts mark on an empty in-bounds cell. It reports false and changes
// nothing for occupied or out-of-range targets.
func (b *Board) PlaceMark(ref CellRef, mark Cell) bool {
	if mark != X && mark != O {
		return false
	}
	if !ref.In(b.geo.Size) || b.At(ref) != Empty {
		return false
	}
	b.grid[ref.I*b.geo.Size+ref.J] = mark
	return true
}

func (b *Board) PlayerMove(ref CellRef) bool {
	return b.PlaceMark(ref, b.HumanSide())
}

func (b *Board) IsFull() bool {
	for _, c := range b.grid {
		if c == Empty {
			return false
		}
	}
	return true
}

// Legal lists empty cells in row-major order.
func (b *Board) Legal() []CellRef {
	out := make([]CellRef, 0, len(b.grid))
	for k, c := range b.grid {
		if c == Empty {
			out = append(out, CellRef{I: k / b.geo.Size, J: k % b.geo.Size})
		}
	}
	return out
}

func (b *Board) CheckWin() Cell {
	side, _ := b.findWin()
	return side
}

// WinningLine returns the completed line, or nil while nobody has won.
func (b *Board) WinningLine() Line {
	_, line := b.findWin()
	return line
}

func (b *Board) findWin() (Cell, Line) {
	for _, line := range b.geo.Lines {
		for _, side := range []Cell{X, O} {
			if b.count(line, side) == len(line) {
				return side, line
			}
		}
	}
	return Empty, nil
}

// Result reports whether the game is over and who won. A completed line wins
// even when it also fills the board; over with Empty winner is a draw.
func (b *Board) Result() (winner Cell, over bool) {
	if w := b.CheckWin(); w != Empty {
		return w, true
	}
	return Empty, b.IsFull()
}

func (b *Board) Clone() *Board {
	c := *b
	c.grid = make([]Cell, len(b.grid))
	copy(c.grid, b.grid)
	return &c
}

// Cells returns a row-major copy of the grid.
func (b *Board) Cells() [][]Cell {
	n := b.geo.Size
	out := make([][]Cell, n)
	for i := range out {
		out[i] = append([]Cell(nil), b.grid[i*n:(i+1)*n]...)
	}
	return out
}

func (b *Board) String() string {
	n := b.geo.Size
	rows := make([]string, n)
	for i := 0; i < n; i++ {
		marks := make([]string, n)
		for j := 0; j < n; j++ {
			marks[j] = b.grid[i*n+j].String()
		}
		rows[i] = strings.Join(marks, " | ")
	}
	return strings.Join(rows, "\n"+strings.Repeat("--+-", n-1)+"-\n")
}

func (b *Board) count(cells []CellRef, side Cell) int {
	n := 0
	for _, ref := range cells {
		if b.At(ref) == side {
			n++
		}
	}
	return n
}
