package game

import "sync"

// Geometry is everything about a board that depends only on its size and win length.
// It is never mutated after construction, so boards and their clones share it.
type Geometry struct {
	Size      int
	WinLength int
	Lines     []Line
	weights   []int
}

func NewGeometry(size, winLength int) *Geometry {
	g := &Geometry{
		Size:      size,
		WinLength: winLength,
		Lines:     Enumerate(size, winLength),
		weights:   make([]int, size*size),
	}
	for _, line := range g.Lines {
		for _, ref := range line {
			g.weights[ref.I*size+ref.J]++
		}
	}
	return g
}

// Weight is the number of lines passing through ref.
func (g *Geometry) Weight(ref CellRef) int {
	if !ref.In(g.Size) {
		return 0
	}
	return g.weights[ref.I*g.Size+ref.J]
}

// Weights returns the table as a row-major matrix.
func (g *Geometry) Weights() [][]int {
	out := make([][]int, g.Size)
	for i := range out {
		out[i] = append([]int(nil), g.weights[i*g.Size:(i+1)*g.Size]...)
	}
	return out
}

type geometryKey struct {
	size, winLength int
}

// GeometryCache hands out one Geometry per (size, win length) pair.
type GeometryCache struct {
	mu    sync.Mutex
	byKey map[geometryKey]*Geometry
}

func NewGeometryCache() *GeometryCache {
	return &GeometryCache{byKey: make(map[geometryKey]*Geometry)}
}

func (c *GeometryCache) Get(size, winLength int) *Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := geometryKey{size, winLength}
	if g, ok := c.byKey[k]; ok {
		return g
	}
	g := NewGeometry(size, winLength)
	c.byKey[k] = g
	return g
}

func (c *GeometryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byKey)
}

// NewBoard is like the package level NewBoard but shares geometry with
// every other board of the same size built from this cache.
func (c *GeometryCache) NewBoard(size int) (*Board, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return newBoard(c.Get(size, WinLength(size))), nil
}
