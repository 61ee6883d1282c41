package game

import "fmt"

type Cell int8

const (
	Empty Cell = 0
	X     Cell = 1
	O     Cell = 2
)

func (c Cell) Opposite() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// CellRef addresses one grid cell by row (I) and column (J).
type CellRef struct {
	I int `json:"i"`
	J int `json:"j"`
}

func (r CellRef) In(size int) bool {
	return r.I >= 0 && r.J >= 0 && r.I < size && r.J < size
}

func (r CellRef) String() string { return fmt.Sprintf("(%d, %d)", r.I, r.J) }

// Line is one way to win: WinLength collinear, contiguous cells.
type Line []CellRef

func (l Line) Contains(ref CellRef) bool {
	for _, r := range l {
		if r == ref {
			return true
		}
	}
	return false
}
