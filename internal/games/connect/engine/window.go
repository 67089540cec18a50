package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow is returned when a level window is empty or negative.
var ErrInvalidWindow = errors.New("engine: invalid level window")

// WindowShiftMessage is the dialog text shown when the window moves up.
// Arguments: the new tile value, then the value of the level being swept.
const WindowShiftMessage = "New block %d, removing blocks %d"

// Window is the half-open range [Min, Max) of levels that may spawn.
type Window struct {
	Min int
	Max int
}

// NewWindow validates and returns a level window.
func NewWindow(min, max int) (Window, error) {
	if min < 0 || min >= max {
		return Window{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidWindow, min, max)
	}
	return Window{Min: min, Max: max}, nil
}

// Contains reports whether level can be spawned.
func (w Window) Contains(level int) bool {
	return level >= w.Min && level < w.Max
}

// Size returns the number of spawnable levels.
func (w Window) Size() int {
	return w.Max - w.Min
}

// Shift moves both bounds up by one.
func (w *Window) Shift() {
	w.Min++
	w.Max++
}

// Spawn draws a new tile from the window.
func (w Window) Spawn(src Source) Tile {
	return RandomTile(src, w.Min, w.Max)
}

// WindowShift describes a window move triggered by a tile upgrade.
type WindowShift struct {
	NewValue     int64  // Value of the upgraded tile
	RemovedValue int64  // Value of the level being swept (2^OldMin)
	OldMin       int    // Level swept from the grid
	Window       Window // Window after the shift
	Message      string
}

func newWindowShift(newLevel int, before Window) *WindowShift {
	after := before
	after.Shift()
	shift := &WindowShift{
		NewValue:     LevelValue(newLevel),
		RemovedValue: LevelValue(before.Min),
		OldMin:       before.Min,
		Window:       after,
	}
	shift.Message = fmt.Sprintf(WindowShiftMessage, shift.NewValue, shift.RemovedValue)
	return shift
}
