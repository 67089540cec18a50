package engine

import "sort"

// Cascade removes the tiles at cells, closing each gap from above and
// spawning a replacement at the top of the column. Returns the distinct
// cells that were cleared, grouped by column.
//
// Within a column rows are processed top-most first: a shift only reads rows
// strictly above its target, so lower targets still hold their original tile.
func Cascade(g *Grid, cells []Coord, spawn func() Tile) []Coord {
	byColumn := make(map[int][]int)
	seen := make(map[Coord]bool, len(cells))
	for _, c := range cells {
		if seen[c] {
			continue
		}
		g.mustBeInBounds(c.X, c.Y)
		seen[c] = true
		byColumn[c.X] = append(byColumn[c.X], c.Y)
	}

	columns := make([]int, 0, len(byColumn))
	for x := range byColumn {
		columns = append(columns, x)
	}
	sort.Ints(columns)

	cleared := make([]Coord, 0, len(seen))
	for _, x := range columns {
		rows := byColumn[x]
		sort.Ints(rows)
		for _, y := range rows {
			dropInto(g, x, y, spawn)
			cleared = append(cleared, C(x, y))
		}
	}
	return cleared
}

// ClearLevel removes every tile at the given level from the whole grid.
// Each column is scanned top to bottom; spawn must not produce level, which
// holds when it draws from a window that has already moved past it.
func ClearLevel(g *Grid, level int, spawn func() Tile) []Coord {
	var cleared []Coord
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.cells[x][y].Level != level {
				continue
			}
			dropInto(g, x, y, spawn)
			cleared = append(cleared, C(x, y))
		}
	}
	return cleared
}

// dropInto discards the tile at (x, y), shifts rows y-1..0 down by one and
// places a fresh tile in row 0.
func dropInto(g *Grid, x, y int, spawn func() Tile) {
	for j := y; j > 0; j-- {
		g.Set(g.cells[x][j-1], x, j)
	}
	g.Set(spawn(), x, 0)
}
