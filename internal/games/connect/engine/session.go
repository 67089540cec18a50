// Package engine implements the rules of the connect puzzle: a grid of
// leveled tiles, the chain selection protocol, the cascade that refills
// cleared cells, and the sliding window of spawnable levels.
//
// The engine is synchronous and has no dependencies outside the standard
// library. Notifications (window shift dialog, score update) are returned
// from Finish rather than delivered through callbacks.
package engine

import "fmt"

// Session is one game: the grid, the level window, the running score and
// the chain in progress.
type Session struct {
	grid   *Grid
	window Window
	src    Source
	sel    Selection
	score  int64
}

// FinishResult reports what a Finish call did.
type FinishResult struct {
	OK       bool         // False when the call was rejected
	Upgraded *Coord       // Final position of the upgraded tile, nil for a single-tile finish
	Cleared  []Coord      // Cells refilled by the selection cascade
	Shift    *WindowShift // Non-nil when the upgrade moved the window
	Swept    []Coord      // Cells refilled by the grid-wide sweep after a shift
	Gained   int64        // Points added by this finish
	Score    int64        // Session score after the finish
}

// NewSession creates a session with a grid filled from the window.
func NewSession(width, height int, window Window, src Source) (*Session, error) {
	if _, err := NewWindow(window.Min, window.Max); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("engine: invalid grid size %dx%d", width, height)
	}
	s := &Session{
		grid:   NewGrid(width, height),
		window: window,
		src:    src,
	}
	s.Randomize()
	return s, nil
}

// Randomize refills every cell from the current window, row by row.
// Any chain in progress is dropped.
func (s *Session) Randomize() {
	s.sel.reset(s.grid)
	for y := 0; y < s.grid.Height(); y++ {
		for x := 0; x < s.grid.Width(); x++ {
			s.grid.Set(s.spawn(), x, y)
		}
	}
}

// Reset re-randomizes the grid and zeroes the score. The window is kept.
func (s *Session) Reset() {
	s.Randomize()
	s.score = 0
}

// Grid returns the session's grid. Callers must not mutate it.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Window returns the current level window.
func (s *Session) Window() Window {
	return s.window
}

// Score returns the accumulated score.
func (s *Session) Score() int64 {
	return s.score
}

// Selection returns the chain in progress. Callers must not mutate it.
func (s *Session) Selection() *Selection {
	return &s.sel
}

// Begin starts a chain at (x, y). Returns false if one is already running.
func (s *Session) Begin(x, y int) bool {
	return s.sel.begin(s.grid, C(x, y))
}

// Continue offers (x, y) as the next tile of the chain, or as a step back
// when it is the second-to-last selected tile. Invalid tiles are ignored.
func (s *Session) Continue(x, y int) {
	s.sel.continueAt(s.grid, C(x, y))
}

// Finish ends the chain at (x, y), which must be the chain's last tile.
//
// A single-tile chain is simply released. A longer chain upgrades its last
// tile, clears the others through the cascade, sweeps the old minimum level
// if the upgrade shifted the window, and adds the chain's value to the score.
func (s *Session) Finish(x, y int) FinishResult {
	if !s.sel.Selecting() || s.sel.Tail() != C(x, y) {
		return FinishResult{}
	}

	if s.sel.Len() == 1 {
		s.sel.reset(s.grid)
		return FinishResult{OK: true, Score: s.score}
	}

	gained := s.sel.TempScore()
	upgradedID, shift := s.upgradeTail()

	rest := s.sel.Chain()
	s.sel.reset(s.grid)
	cleared := Cascade(s.grid, rest, s.spawn)

	var swept []Coord
	if shift != nil {
		swept = s.SweepLevel(shift.OldMin)
	}

	s.score += gained

	result := FinishResult{
		OK:      true,
		Cleared: cleared,
		Shift:   shift,
		Swept:   swept,
		Gained:  gained,
		Score:   s.score,
	}
	if pos, ok := s.grid.Find(upgradedID); ok {
		result.Upgraded = &pos
	}
	return result
}

// upgradeTail removes the last tile from the chain and raises its level.
// Returns the tile's ID and, when the new level reaches the window max,
// the shift that was applied.
func (s *Session) upgradeTail() (uint64, *WindowShift) {
	tail := s.sel.popTail(s.grid)
	tile := s.grid.At(tail)
	tile.Level++

	if tile.Level < s.window.Max {
		return tile.ID, nil
	}
	shift := newWindowShift(tile.Level, s.window)
	s.window.Shift()
	return tile.ID, shift
}

// SweepLevel clears every tile at level from the grid through the cascade,
// refilling from the current window.
func (s *Session) SweepLevel(level int) []Coord {
	return ClearLevel(s.grid, level, s.spawn)
}

func (s *Session) spawn() Tile {
	return s.window.Spawn(s.src)
}
