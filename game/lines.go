package game

// WinLength is the number of marks in a row needed to win on a board of the given size.
func WinLength(size int) int {
	switch {
	case size < MinSize:
		return 0
	case size <= 4:
		return 3
	case size == 5:
		return 4
	default:
		return 5
	}
}

// Enumerate returns every winning line of exactly winLength cells on a size x size grid:
// rows, columns, then both diagonal families, each cut into sliding windows.
func Enumerate(size, winLength int) []Line {
	if size <= 0 || winLength < 1 || winLength > size {
		return nil
	}
	grid := refGrid(size)
	runs := make([][]CellRef, 0, 6*size)
	runs = append(runs, grid...)
	runs = append(runs, rotate90(grid)...)
	runs = append(runs, shear(grid, false)...)
	runs = append(runs, shear(grid, true)...)

	out := []Line{}
	for _, run := range runs {
		for k := 0; k+winLength <= len(run); k++ {
			line := make(Line, winLength)
			copy(line, run[k:k+winLength])
			out = append(out, line)
		}
	}
	return out
}

func refGrid(size int) [][]CellRef {
	grid := make([][]CellRef, size)
	for i := range grid {
		grid[i] = make([]CellRef, size)
		for j := range grid[i] {
			grid[i][j] = CellRef{I: i, J: j}
		}
	}
	return grid
}

func rotate90(grid [][]CellRef) [][]CellRef {
	n := len(grid)
	out := make([][]CellRef, n)
	for j := 0; j < n; j++ {
		out[j] = make([]CellRef, n)
		for i := 0; i < n; i++ {
			out[j][i] = grid[i][j]
		}
	}
	return out
}

// shear groups cells by i+j (anti-diagonals) or, when reverse is set, by i-j.
// Cells within a run keep increasing row order.
func shear(grid [][]CellRef, reverse bool) [][]CellRef {
	n := len(grid)
	out := make([][]CellRef, 2*n-1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k := i + j
			if reverse {
				k = i - j + n - 1
			}
			out[k] = append(out[k], grid[i][j])
		}
	}
	return out
}
