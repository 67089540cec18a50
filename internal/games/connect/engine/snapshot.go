package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot is returned when a snapshot cannot describe a session.
var ErrInvalidSnapshot = errors.New("engine: invalid snapshot")

// Snapshot captures everything needed to restore a session between events:
// grid size, every cell's level, the level window and the score.
type Snapshot struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
	Score  int64   `yaml:"score"`
	Levels [][]int `yaml:"levels"` // Indexed [x][y]
}

// Snapshot returns the session state. A chain in progress is not captured.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Width:  s.grid.Width(),
		Height: s.grid.Height(),
		Min:    s.window.Min,
		Max:    s.window.Max,
		Score:  s.score,
		Levels: s.grid.Levels(),
	}
}

// Validate checks the snapshot's dimensions, window and levels.
func (snap Snapshot) Validate() error {
	if snap.Width <= 0 || snap.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidSnapshot, snap.Width, snap.Height)
	}
	if _, err := NewWindow(snap.Min, snap.Max); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if snap.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidSnapshot, snap.Score)
	}
	if len(snap.Levels) != snap.Width {
		return fmt.Errorf("%w: %d columns, want %d", ErrInvalidSnapshot, len(snap.Levels), snap.Width)
	}
	for x, col := range snap.Levels {
		if len(col) != snap.Height {
			return fmt.Errorf("%w: column %d has %d rows, want %d", ErrInvalidSnapshot, x, len(col), snap.Height)
		}
		for y, level := range col {
			if level < 0 {
				return fmt.Errorf("%w: negative level at (%d,%d)", ErrInvalidSnapshot, x, y)
			}
		}
	}
	return nil
}

// Restore builds a session from a snapshot. src feeds later refills.
func Restore(snap Snapshot, src Source) (*Session, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		grid:   NewGrid(snap.Width, snap.Height),
		window: Window{Min: snap.Min, Max: snap.Max},
		src:    src,
		score:  snap.Score,
	}
	for x, col := range snap.Levels {
		for y, level := range col {
			s.grid.Set(NewTile(level), x, y)
		}
	}
	return s, nil
}
