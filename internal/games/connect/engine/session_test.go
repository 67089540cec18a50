package engine_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-connect/internal/games/connect/engine"
)

// scriptedSource returns offsets from a fixed list, repeating the last one.
type scriptedSource struct {
	offsets []int
	calls   int
}

func (s *scriptedSource) Intn(n int) int {
	i := s.calls
	if i >= len(s.offsets) {
		i = len(s.offsets) - 1
	}
	s.calls++
	return s.offsets[i] % n
}

func restore(t *testing.T, levels [][]int, min, max int, src engine.Source) *engine.Session {
	t.Helper()
	s, err := engine.Restore(engine.Snapshot{
		Width:  len(levels),
		Height: len(levels[0]),
		Min:    min,
		Max:    max,
		Levels: levels,
	}, src)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	return s
}

func TestNewSessionLevelsInWindow(t *testing.T) {
	s, err := engine.NewSession(6, 9, engine.Window{Min: 2, Max: 6}, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	seen := make(map[int]bool)
	g := s.Grid()
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			tile := g.Get(x, y)
			if !s.Window().Contains(tile.Level) {
				t.Errorf("tile at (%d,%d) has level %d outside [2,6)", x, y, tile.Level)
			}
			if tile.X != x || tile.Y != y {
				t.Errorf("tile at (%d,%d) reports (%d,%d)", x, y, tile.X, tile.Y)
			}
			seen[tile.Level] = true
		}
	}
	if seen[6] {
		t.Error("max level must never spawn")
	}
}

func TestNewSessionRejectsBadWindow(t *testing.T) {
	_, err := engine.NewSession(3, 3, engine.Window{Min: 4, Max: 4}, rand.New(rand.NewSource(1)))
	if !errors.Is(err, engine.ErrInvalidWindow) {
		t.Errorf("NewSession() error = %v, want ErrInvalidWindow", err)
	}
}

func TestFinishExampleChain(t *testing.T) {
	// Window [1,4). (0,0)=1, (1,1)=1, (1,0)=2
	s := restore(t, [][]int{
		{1, 3, 3},
		{2, 1, 3},
		{3, 3, 3},
	}, 1, 4, &scriptedSource{offsets: []int{0}})
	upgraded := s.Grid().Get(1, 0)
	cleared00 := s.Grid().Get(0, 0)
	cleared11 := s.Grid().Get(1, 1)

	if !s.Begin(0, 0) {
		t.Fatal("Begin(0,0) failed")
	}
	s.Continue(1, 1)
	s.Continue(1, 0)
	if got := s.Selection().Len(); got != 3 {
		t.Fatalf("chain length = %d, want 3", got)
	}
	tempScore := s.Selection().TempScore()

	res := s.Finish(1, 0)

	if !res.OK {
		t.Fatal("Finish on the tail should succeed")
	}
	if want := int64(2 + 2 + 4); res.Gained != want || s.Score() != want || tempScore != want {
		t.Errorf("gained %d, score %d, temp %d, want %d", res.Gained, s.Score(), tempScore, want)
	}
	if res.Score != s.Score() {
		t.Errorf("result score = %d, want %d", res.Score, s.Score())
	}
	if res.Shift != nil {
		t.Error("level 3 is below max 4, no shift expected")
	}

	// Upgraded tile dropped one row because (1,1) below it was cleared
	if res.Upgraded == nil || *res.Upgraded != engine.C(1, 1) {
		t.Fatalf("Upgraded = %v, want (1,1)", res.Upgraded)
	}
	tile := s.Grid().Get(1, 1)
	if tile.ID != upgraded.ID || tile.Level != 3 || tile.Selected {
		t.Errorf("upgraded tile = %+v, want level 3 unselected", tile)
	}

	if s.Grid().Get(0, 0).ID == cleared00.ID || s.Grid().Get(1, 1).ID == cleared11.ID {
		t.Error("cleared cells should hold different tiles")
	}
	if got := s.Grid().Get(1, 0).Level; got != 1 {
		t.Errorf("refilled top of column 1 = %d, want 1", got)
	}
	if s.Selection().Selecting() || s.Selection().TempScore() != 0 {
		t.Error("selection should be reset after finish")
	}
	assertNothingSelected(t, s)
}

func TestFinishSingleTile(t *testing.T) {
	s := restore(t, [][]int{{1, 2}, {2, 1}}, 1, 4, &scriptedSource{offsets: []int{0}})
	before := s.Snapshot()
	ids := tileIDs(s)

	s.Begin(1, 1)
	res := s.Finish(1, 1)

	if !res.OK {
		t.Fatal("Finish on single tile should succeed")
	}
	if s.Score() != 0 || res.Gained != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if res.Upgraded != nil || len(res.Cleared) != 0 {
		t.Error("single-tile finish must not mutate the grid")
	}
	after := s.Snapshot()
	for x := range before.Levels {
		for y := range before.Levels[x] {
			if before.Levels[x][y] != after.Levels[x][y] {
				t.Fatalf("grid changed: %v -> %v", before.Levels, after.Levels)
			}
		}
	}
	for i, id := range tileIDs(s) {
		if id != ids[i] {
			t.Fatal("tile identities changed")
		}
	}
	assertNothingSelected(t, s)
	if s.Selection().Selecting() {
		t.Error("session should be idle")
	}
}

func TestFinishRejected(t *testing.T) {
	s := restore(t, [][]int{{1, 1}, {1, 1}}, 1, 4, &scriptedSource{offsets: []int{0}})

	if res := s.Finish(0, 0); res.OK {
		t.Error("Finish while idle should fail")
	}

	s.Begin(0, 0)
	s.Continue(1, 0)
	if res := s.Finish(0, 0); res.OK {
		t.Error("Finish on a non-tail tile should fail")
	}
	if s.Selection().Len() != 2 || !s.Selection().Selecting() {
		t.Error("rejected Finish must leave the chain intact")
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
}

func TestFinishShiftsWindowAndSweepsOldMin(t *testing.T) {
	// Window [1,3). Chain (0,0)=2 -> (1,0)=2 upgrades to 3 == max.
	s := restore(t, [][]int{
		{2, 1, 1},
		{2, 1, 2},
		{1, 2, 1},
	}, 1, 3, &scriptedSource{offsets: []int{0}})

	s.Begin(0, 0)
	s.Continue(1, 0)
	res := s.Finish(1, 0)

	if !res.OK {
		t.Fatal("Finish failed")
	}
	if res.Shift == nil {
		t.Fatal("upgrade to max should shift the window")
	}
	if res.Shift.Message != "New block 8, removing blocks 2" {
		t.Errorf("Message = %q", res.Shift.Message)
	}
	if res.Shift.NewValue != 8 || res.Shift.RemovedValue != 2 || res.Shift.OldMin != 1 {
		t.Errorf("Shift = %+v", *res.Shift)
	}
	if w := s.Window(); w.Min != 2 || w.Max != 4 {
		t.Errorf("Window() = %+v, want [2,4)", w)
	}
	if len(res.Swept) != 5 {
		t.Errorf("swept %d cells, want 5", len(res.Swept))
	}
	if n := s.Grid().CountLevel(1); n != 0 {
		t.Errorf("%d tiles at old min remain", n)
	}
	if res.Upgraded == nil || *res.Upgraded != engine.C(1, 1) {
		t.Errorf("Upgraded = %v, want (1,1)", res.Upgraded)
	}
	if got := s.Grid().Get(1, 1).Level; got != 3 {
		t.Errorf("upgraded level = %d, want 3", got)
	}
	if s.Score() != 8 {
		t.Errorf("score = %d, want 8", s.Score())
	}
	for _, col := range s.Snapshot().Levels {
		for _, level := range col {
			if level < 2 {
				t.Errorf("level %d below new min survived", level)
			}
		}
	}
}

func TestSweepLevelIsIndependent(t *testing.T) {
	s := restore(t, [][]int{{1, 2}, {2, 1}}, 2, 4, &scriptedSource{offsets: []int{1}})

	swept := s.SweepLevel(1)

	if len(swept) != 2 {
		t.Errorf("swept %d cells, want 2", len(swept))
	}
	if n := s.Grid().CountLevel(1); n != 0 {
		t.Errorf("%d level-1 tiles remain", n)
	}
	if s.Score() != 0 {
		t.Error("sweeping does not score")
	}
}

func TestScoreAccumulatesAcrossSelections(t *testing.T) {
	src := &scriptedSource{offsets: []int{2}} // Refill with level 3 in [1,4)
	s := restore(t, [][]int{
		{1, 1, 3},
		{1, 1, 3},
	}, 1, 4, src)

	s.Begin(0, 1)
	s.Continue(1, 1)
	first := s.Finish(1, 1)

	s.Begin(0, 2)
	s.Continue(1, 2)
	second := s.Finish(1, 2)

	if !first.OK || !second.OK {
		t.Fatal("both finishes should succeed")
	}
	if got, want := s.Score(), first.Gained+second.Gained; got != want {
		t.Errorf("score = %d, want %d", got, want)
	}
	if second.Score < first.Score {
		t.Error("score must never decrease")
	}
}

func TestDeterminism(t *testing.T) {
	play := func() engine.Snapshot {
		s, err := engine.NewSession(5, 8, engine.Window{Min: 1, Max: 4}, rand.New(rand.NewSource(12345)))
		if err != nil {
			t.Fatalf("NewSession() failed: %v", err)
		}
		// Greedy script: try to chain every cell with its right neighbour
		for y := 0; y < 8; y++ {
			for x := 0; x < 4; x++ {
				s.Begin(x, y)
				s.Continue(x+1, y)
				tail := s.Selection().Tail()
				s.Finish(tail.X, tail.Y)
			}
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	if a.Score != b.Score || a.Min != b.Min || a.Max != b.Max {
		t.Fatalf("snapshots differ: %+v vs %+v", a, b)
	}
	for x := range a.Levels {
		for y := range a.Levels[x] {
			if a.Levels[x][y] != b.Levels[x][y] {
				t.Fatalf("levels differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, err := engine.NewSession(4, 3, engine.Window{Min: 1, Max: 5}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.Begin(0, 0)
	s.Continue(1, 0)
	s.Finish(s.Selection().Tail().X, s.Selection().Tail().Y)

	snap := s.Snapshot()
	restored, err := engine.Restore(snap, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	got := restored.Snapshot()
	if got.Score != snap.Score || got.Min != snap.Min || got.Max != snap.Max {
		t.Errorf("restored %+v, want %+v", got, snap)
	}
	if restored.Grid().String() != s.Grid().String() {
		t.Errorf("grid mismatch:\n%s\nvs\n%s", restored.Grid(), s.Grid())
	}
}

func TestRestoreValidation(t *testing.T) {
	tests := []struct {
		name string
		snap engine.Snapshot
	}{
		{"zero width", engine.Snapshot{Width: 0, Height: 1, Min: 1, Max: 2}},
		{"empty window", engine.Snapshot{Width: 1, Height: 1, Min: 2, Max: 2, Levels: [][]int{{2}}}},
		{"missing column", engine.Snapshot{Width: 2, Height: 1, Min: 1, Max: 2, Levels: [][]int{{1}}}},
		{"short column", engine.Snapshot{Width: 1, Height: 2, Min: 1, Max: 2, Levels: [][]int{{1}}}},
		{"negative level", engine.Snapshot{Width: 1, Height: 1, Min: 1, Max: 2, Levels: [][]int{{-1}}}},
		{"negative score", engine.Snapshot{Width: 1, Height: 1, Min: 1, Max: 2, Score: -5, Levels: [][]int{{1}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Restore(tc.snap, rand.New(rand.NewSource(1)))
			if !errors.Is(err, engine.ErrInvalidSnapshot) {
				t.Errorf("Restore() error = %v, want ErrInvalidSnapshot", err)
			}
		})
	}
}

func TestContinueOutOfBoundsPanics(t *testing.T) {
	s := restore(t, [][]int{{1}}, 1, 2, &scriptedSource{offsets: []int{0}})
	s.Begin(0, 0)
	defer func() {
		if recover() == nil {
			t.Error("Continue outside the grid should panic")
		}
	}()
	s.Continue(5, 5)
}

func assertNothingSelected(t *testing.T, s *engine.Session) {
	t.Helper()
	g := s.Grid()
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			if g.Get(x, y).Selected {
				t.Errorf("tile at (%d,%d) still selected", x, y)
			}
		}
	}
}

func tileIDs(s *engine.Session) []uint64 {
	g := s.Grid()
	var ids []uint64
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			ids = append(ids, g.Get(x, y).ID)
		}
	}
	return ids
}

func TestWindowSizeFollowsShift(t *testing.T) {
	w, err := engine.NewWindow(1, 4)
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}
	w.Shift()
	if w.Size() != 3 || w.Min != 2 {
		t.Errorf("after Shift: %+v size %d, want [2,5) size 3", w, w.Size())
	}
}
