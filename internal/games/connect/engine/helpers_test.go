package engine

// fixedSource always returns the same offset (clamped to the range).
type fixedSource int

func (f fixedSource) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

// gridFromLevels builds a grid from columns of levels, indexed [x][y].
func gridFromLevels(levels [][]int) *Grid {
	g := NewGrid(len(levels), len(levels[0]))
	for x, col := range levels {
		for y, level := range col {
			g.Set(NewTile(level), x, y)
		}
	}
	return g
}
