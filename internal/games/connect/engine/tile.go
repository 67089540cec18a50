package engine

import "fmt"

// Tile is a single leveled block on the grid.
type Tile struct {
	ID       uint64 // Assigned by the grid when a new tile is first placed
	Level    int
	X, Y     int // Current slot, maintained by Grid.Set
	Selected bool
}

// NewTile creates an unplaced tile at the given level.
func NewTile(level int) Tile {
	return Tile{Level: level}
}

// Value returns 2^Level.
func (t Tile) Value() int64 {
	return LevelValue(t.Level)
}

// Pos returns the tile's grid coordinate.
func (t Tile) Pos() Coord {
	return Coord{X: t.X, Y: t.Y}
}

// String formats the tile the way the grid dump prints cells.
func (t Tile) String() string {
	if t.Selected {
		return fmt.Sprintf("%d*", t.Value())
	}
	return fmt.Sprintf("%d", t.Value())
}

// LevelValue returns the value of a tile at the given level.
func LevelValue(level int) int64 {
	if level < 0 {
		return 0
	}
	return int64(1) << uint(level)
}
