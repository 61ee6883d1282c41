package game

// Threat is the longest window a side can still complete with one more mark,
// and every cell that completes a window of that length.
type Threat struct {
	Length int
	Cells  []CellRef
}

type refSet struct {
	seen map[CellRef]struct{}
	refs []CellRef
}

func (s *refSet) add(refs ...CellRef) {
	if s.seen == nil {
		s.seen = make(map[CellRef]struct{})
	}
	for _, r := range refs {
		if _, ok := s.seen[r]; ok {
			continue
		}
		s.seen[r] = struct{}{}
		s.refs = append(s.refs, r)
	}
}

// completion returns the single empty cell of cells when every other cell
// belongs to side.
func (b *Board) completion(cells []CellRef, side Cell) (CellRef, bool) {
	var hole CellRef
	holes := 0
	for _, ref := range cells {
		switch b.At(ref) {
		case Empty:
			hole = ref
			holes++
		case side:
		default:
			return CellRef{}, false
		}
	}
	return hole, holes == 1
}

// ImmediateWins returns the cells that finish a line right away for pov (own)
// and for its opponent (opp).
func (b *Board) ImmediateWins(pov Cell) (own, opp []CellRef) {
	var o, p refSet
	for _, line := range b.geo.Lines {
		if ref, ok := b.completion(line, pov); ok {
			o.add(ref)
		}
		if ref, ok := b.completion(line, pov.Opposite()); ok {
			p.add(ref)
		}
	}
	return o.refs, p.refs
}

func (b *Board) LongestThreat(side Cell) Threat {
	best := 0
	var cells refSet
	for _, line := range b.geo.Lines {
		for size := len(line); size >= 2 && size >= best; size-- {
			for k := 0; k+size <= len(line); k++ {
				ref, ok := b.completion(line[k:k+size], side)
				if !ok {
					continue
				}
				if size > best {
					best = size
					cells = refSet{}
				}
				cells.add(ref)
			}
		}
	}
	return Threat{Length: best, Cells: cells.refs}
}

// BlockOrPush offers cells that either extend pov's longest threat or block the
// opponent's, whichever is longer; both when they tie.
func (b *Board) BlockOrPush(pov Cell) []CellRef {
	own, opp := b.LongestThreat(pov), b.LongestThreat(pov.Opposite())
	switch {
	case own.Length == 0 && opp.Length == 0:
		return nil
	case own.Length == opp.Length:
		var s refSet
		s.add(own.Cells...)
		s.add(opp.Cells...)
		return s.refs
	case opp.Length > own.Length:
		return opp.Cells
	default:
		return own.Cells
	}
}

// PickTacticalMoves returns immediate wins or blocks first, then BlockOrPush.
// A lenient caller skips each of the two checks on a coin flip.
func (b *Board) PickTacticalMoves(pov Cell, lenient bool) []CellRef {
	if !lenient || b.coin() {
		own, opp := b.ImmediateWins(pov)
		if len(own)+len(opp) > 0 {
			var s refSet
			s.add(own...)
			s.add(opp...)
			return s.refs
		}
	}
	if lenient && b.coin() {
		return nil
	}
	return b.BlockOrPush(pov)
}

func (b *Board) coin() bool { return b.rng.Intn(2) == 0 }
