package engine

import "fmt"

// Coord addresses a grid cell. X is the column, Y the row; Y=0 is the top row.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// IsAdjacent reports whether a and b are distinct cells that touch
// horizontally, vertically or diagonally.
func IsAdjacent(a, b Coord) bool {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx == 0 && dy == 0 {
		return false
	}
	return dx <= 1 && dy <= 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
