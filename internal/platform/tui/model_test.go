package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-connect/internal/config"
	"github.com/vovakirdan/tui-connect/internal/core"
	"github.com/vovakirdan/tui-connect/internal/games/connect"
	"github.com/vovakirdan/tui-connect/internal/games/connect/engine"
	"github.com/vovakirdan/tui-connect/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T) (Model, *connect.Game, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	v, _ := config.DefaultConnectConfig().Variant("connect")
	game := connect.New(v)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 5}
	m := NewModel(game, store, cfg, Options{SaveName: "slot"})
	m.Init()
	return m, game, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey('a'), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm, false},
		{runeKey('x'), core.ActionCancel, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('e'), core.ActionEnd, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 9, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 6, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionRelease}, &frame)

	want := []core.PointerEvent{
		{Kind: core.PointerPress, X: 3, Y: 4},
		{Kind: core.PointerMotion, X: 5, Y: 4},
		{Kind: core.PointerRelease, X: 5, Y: 4},
	}
	if len(frame.Pointer) != len(want) {
		t.Fatalf("got %d pointer events, want %d: %+v", len(frame.Pointer), len(want), frame.Pointer)
	}
	for i := range want {
		if frame.Pointer[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, frame.Pointer[i], want[i])
		}
	}
}

func TestModelSavesBoard(t *testing.T) {
	m, game, store := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.Status(), "slot") {
		t.Errorf("Status() = %q, want save confirmation", m.Status())
	}

	save, err := store.LoadGame("slot")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if save.Variant != "connect" {
		t.Errorf("Variant = %q, want connect", save.Variant)
	}
	if save.Snapshot.Width != game.Snapshot().Width || save.Snapshot.Height != game.Snapshot().Height {
		t.Errorf("saved %dx%d board", save.Snapshot.Width, save.Snapshot.Height)
	}
}

func TestModelRecordsScoreOnEnd(t *testing.T) {
	m, game, store := newTestModel(t)

	snap := game.Snapshot()
	snap.Score = 64
	if err := game.Load(snap); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	m = update(t, m, runeKey('e'))
	m = update(t, m, TickMsg(time.Now()))
	if !m.gameState.GameOver {
		t.Fatal("run should have ended")
	}
	// A second tick must not record the score again
	m = update(t, m, TickMsg(time.Now()))

	scores, err := store.AllScores("connect")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 64 {
		t.Errorf("scores = %+v, want one entry of 64", scores)
	}
}

func TestModelEmbeddedQuitReturnsToMenu(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.opts.Embedded = true

	m = update(t, m, runeKey('q'))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("BackToMenu() = %v, IsQuitting() = %v", m.BackToMenu(), m.IsQuitting())
	}
}

func TestModelSaveWithoutStore(t *testing.T) {
	v, _ := config.DefaultConnectConfig().Variant("connect_mini")
	m := NewModel(connect.New(v), nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 30}, Options{})
	m.Init()

	if err := m.trySave(); err == nil {
		t.Error("save without a store should fail")
	}
	if m.opts.SaveName != "connect_mini" {
		t.Errorf("default SaveName = %q, want connect_mini", m.opts.SaveName)
	}
}

func TestSaveRows(t *testing.T) {
	saves := []storage.SavedGame{
		{Name: "a", Snapshot: engine.Snapshot{Score: 12}},
	}
	rows := saveRows(saves)
	if len(rows) != 1 || rows[0][0] != "a" || rows[0][1] != "12" {
		t.Errorf("saveRows() = %v", rows)
	}
}
