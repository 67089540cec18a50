package engine

import "fmt"

// Source is the random number source tiles are drawn from.
// *math/rand.Rand satisfies it; tests may supply a scripted source.
type Source interface {
	Intn(n int) int
}

// RandomTile returns an unplaced tile with a level drawn uniformly from
// [min, max). The max level itself is never produced.
func RandomTile(src Source, min, max int) Tile {
	if min >= max {
		panic(fmt.Sprintf("engine: empty level range [%d, %d)", min, max))
	}
	return NewTile(min + src.Intn(max-min))
}
