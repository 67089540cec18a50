package engine

import (
	"fmt"
	"strings"
)

// Grid is the rectangular board of tiles, indexed [x][y].
// Every cell holds exactly one tile once the grid has been filled.
type Grid struct {
	width  int
	height int
	cells  [][]Tile
	nextID uint64
}

// NewGrid allocates an empty grid. Callers fill every cell before use.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("engine: invalid grid size %dx%d", width, height))
	}
	cells := make([][]Tile, width)
	for x := range cells {
		cells[x] = make([]Tile, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) is a cell of this grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns a copy of the tile at (x, y).
// Panics if the coordinate is outside the grid.
func (g *Grid) Get(x, y int) Tile {
	g.mustBeInBounds(x, y)
	return g.cells[x][y]
}

// At returns a pointer to the tile stored at c for in-place updates.
// Panics if the coordinate is outside the grid.
func (g *Grid) At(c Coord) *Tile {
	g.mustBeInBounds(c.X, c.Y)
	return &g.cells[c.X][c.Y]
}

// Set places t at (x, y) and rewrites its stored coordinates.
// A tile that has never been placed receives a fresh ID.
func (g *Grid) Set(t Tile, x, y int) {
	g.mustBeInBounds(x, y)
	if t.ID == 0 {
		g.nextID++
		t.ID = g.nextID
	}
	t.X = x
	t.Y = y
	g.cells[x][y] = t
}

func (g *Grid) mustBeInBounds(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("engine: cell (%d,%d) out of bounds for %dx%d grid", x, y, g.width, g.height))
	}
}

// Find returns the current position of the tile with the given ID.
func (g *Grid) Find(id uint64) (Coord, bool) {
	for x := range g.cells {
		for y := range g.cells[x] {
			if g.cells[x][y].ID == id {
				return C(x, y), true
			}
		}
	}
	return Coord{}, false
}

// Levels returns the level of every cell, indexed [x][y].
func (g *Grid) Levels() [][]int {
	levels := make([][]int, g.width)
	for x := range levels {
		levels[x] = make([]int, g.height)
		for y := range levels[x] {
			levels[x][y] = g.cells[x][y].Level
		}
	}
	return levels
}

// CountLevel returns how many cells hold a tile at the given level.
func (g *Grid) CountLevel(level int) int {
	n := 0
	for x := range g.cells {
		for y := range g.cells[x] {
			if g.cells[x][y].Level == level {
				n++
			}
		}
	}
	return n
}

// MaxLevel returns the highest tile level on the grid.
func (g *Grid) MaxLevel() int {
	best := g.cells[0][0].Level
	for x := range g.cells {
		for y := range g.cells[x] {
			if g.cells[x][y].Level > best {
				best = g.cells[x][y].Level
			}
		}
	}
	return best
}

// String dumps the grid row by row as tile values, e.g. "[2,4,2]\n[8,2,2]".
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(g.cells[x][y].String())
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
