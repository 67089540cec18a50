package engine

// Selection is the chain of tiles the player is currently connecting.
// It stores coordinates only; all tile state lives in the grid.
type Selection struct {
	chain     []Coord
	selecting bool
	firstTile bool // True until the second tile is accepted
	lastLevel int
	tempScore int64
}

// Selecting reports whether a chain is in progress.
func (s *Selection) Selecting() bool {
	return s.selecting
}

// Len returns the number of tiles in the chain.
func (s *Selection) Len() int {
	return len(s.chain)
}

// Chain returns a copy of the selected coordinates in selection order.
func (s *Selection) Chain() []Coord {
	out := make([]Coord, len(s.chain))
	copy(out, s.chain)
	return out
}

// TempScore returns the sum of the values of the selected tiles.
func (s *Selection) TempScore() int64 {
	return s.tempScore
}

// LastLevel returns the level of the most recently accepted tile.
func (s *Selection) LastLevel() int {
	return s.lastLevel
}

// Tail returns the last selected cell.
// Panics when the chain is empty; callers check Selecting first.
func (s *Selection) Tail() Coord {
	if len(s.chain) == 0 {
		panic("engine: selection chain is empty")
	}
	return s.chain[len(s.chain)-1]
}

// begin starts a new chain at c. Returns false if a chain is in progress.
func (s *Selection) begin(g *Grid, c Coord) bool {
	if s.selecting {
		return false
	}
	tile := g.At(c)

	s.selecting = true
	s.firstTile = true
	s.chain = append(s.chain[:0], c)
	s.lastLevel = tile.Level
	s.tempScore = 0
	s.add(tile)
	return true
}

// continueAt applies a hover over c. Invalid candidates are ignored.
func (s *Selection) continueAt(g *Grid, c Coord) {
	if !s.selecting {
		return
	}
	tile := g.At(c)

	if !IsAdjacent(s.Tail(), c) || tile.Selected {
		// Re-hovering the previous tile undoes the latest addition
		if len(s.chain) >= 2 && s.chain[len(s.chain)-2] == c {
			s.popTail(g)
		}
		return
	}

	if s.firstTile {
		if tile.Level != s.lastLevel {
			return
		}
		s.firstTile = false
	} else {
		if tile.Level != s.lastLevel && tile.Level != s.lastLevel+1 {
			return
		}
		s.lastLevel = tile.Level
	}

	s.chain = append(s.chain, c)
	s.add(tile)
}

// popTail removes the last tile from the chain and unselects it.
func (s *Selection) popTail(g *Grid) Coord {
	tail := s.Tail()
	tile := g.At(tail)
	tile.Selected = false
	s.tempScore -= tile.Value()
	s.chain = s.chain[:len(s.chain)-1]
	// lastLevel and firstTile keep their values; the next extension is
	// still judged against the popped tile's level.
	return tail
}

// add marks tile selected and accumulates its value.
func (s *Selection) add(tile *Tile) {
	tile.Selected = true
	s.tempScore += tile.Value()
}

// reset unselects every chained tile and returns to idle.
func (s *Selection) reset(g *Grid) {
	for _, c := range s.chain {
		g.At(c).Selected = false
	}
	s.chain = s.chain[:0]
	s.selecting = false
	s.firstTile = false
	s.lastLevel = 0
	s.tempScore = 0
}
