// Package connect adapts the connect puzzle engine to the arcade platform:
// it turns pointer and keyboard input into chain gestures, keeps the window
// shift dialog on screen, and draws the board.
package connect

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-connect/internal/config"
	"github.com/vovakirdan/tui-connect/internal/core"
	"github.com/vovakirdan/tui-connect/internal/games/connect/engine"
	"github.com/vovakirdan/tui-connect/internal/registry"
)

// Game implements registry.Game for one board variant.
type Game struct {
	variant config.VariantConfig
	display config.DisplayConfig

	session *engine.Session
	rng     *rand.Rand
	tick    uint64

	cursor engine.Coord
	dialog string               // Pending window shift message, empty when dismissed
	flash  map[engine.Coord]int // Refilled cells and their remaining highlight ticks
	board  core.Rect            // Screen area of the tiles, for pointer hit tests

	screenW int
	screenH int

	ended    bool
	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	configPath     string
	difficulty     = config.DifficultyNormal
	overrideWidth  int
	overrideHeight int
	pendingLoad    *engine.Snapshot
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficulty sets the difficulty preset applied on the next Reset.
func SetDifficulty(preset config.DifficultyPreset) {
	difficulty = preset
}

// SetSize overrides the board size of the variant. Zero keeps the configured value.
func SetSize(width, height int) {
	overrideWidth = width
	overrideHeight = height
}

// SetPendingLoad makes the next Reset restore snap instead of dealing a new board.
// Returns an error and leaves nothing pending when snap cannot be restored.
func SetPendingLoad(snap engine.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("cannot restore save: %w", err)
	}
	pendingLoad = &snap
	return nil
}

// New creates a game for the given variant.
func New(v config.VariantConfig) *Game {
	return &Game{
		variant: v,
		display: config.DefaultConnectConfig().Display,
	}
}

func init() {
	for _, v := range config.EmbeddedConnectConfig().Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description returns a one-line summary for the game list.
func (g *Game) Description() string {
	return g.variant.Description
}

// Session exposes the running engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Reset deals a new board, or restores a pending save.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.cursor = engine.C(0, 0)
	g.dialog = ""
	g.flash = make(map[engine.Coord]int)
	g.ended = false
	g.paused = false

	notice := ""
	if pendingLoad != nil {
		snap := *pendingLoad
		pendingLoad = nil // Reset after use
		err := g.Load(snap)
		if err == nil {
			g.checkScreenSize()
			return
		}
		log.Warn("pending save rejected, dealing a new board", "err", err)
		notice = "Save could not be restored"
	}

	window := engine.Window{Min: g.variant.MinLevel, Max: g.variant.MaxLevel}
	session, err := engine.NewSession(g.variant.Width, g.variant.Height, window, g.rng)
	if err != nil {
		// Validated config cannot get here; fall back to the built-in board.
		def, _ := config.DefaultConnectConfig().Variant("connect")
		window = engine.Window{Min: def.MinLevel, Max: def.MaxLevel}
		session, _ = engine.NewSession(def.Width, def.Height, window, g.rng)
	}
	g.session = session
	g.dialog = notice
	g.checkScreenSize()
}

// loadConfig refreshes the variant and display settings from the config files.
func (g *Game) loadConfig() {
	cfg, err := config.LoadConnect(configPath)
	if err != nil {
		cfg = config.EmbeddedConnectConfig()
	}
	g.display = cfg.Display
	if v, ok := cfg.Variant(g.variant.ID); ok {
		g.variant = v
	}
	if overrideWidth >= 2 {
		g.variant.Width = overrideWidth
	}
	if overrideHeight >= 2 {
		g.variant.Height = overrideHeight
	}
	config.ApplyConnectPreset(&g.variant, difficulty)
}

// Load replaces the session with a saved one. The RNG keeps its seed.
func (g *Game) Load(snap engine.Snapshot) error {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	session, err := engine.Restore(snap, g.rng)
	if err != nil {
		return err
	}
	g.session = session
	g.variant.Width = snap.Width
	g.variant.Height = snap.Height
	g.cursor = engine.C(0, 0)
	g.dialog = ""
	g.flash = make(map[engine.Coord]int)
	g.ended = false
	g.checkScreenSize()
	return nil
}

// Snapshot returns the session state for saving.
func (g *Game) Snapshot() engine.Snapshot {
	return g.session.Snapshot()
}

// Resize adapts the layout to a new terminal size without touching the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Dialog returns the message currently shown in the dialog, if any.
func (g *Game) Dialog() string {
	return g.dialog
}

// Cursor returns the keyboard cursor position.
func (g *Game) Cursor() engine.Coord {
	return g.cursor
}

// checkScreenSize checks if the screen is large enough and lays out the board.
func (g *Game) checkScreenSize() {
	g.board = core.NewRect((g.screenW-g.boardWidth())/2, hudHeight+1, g.boardWidth(), g.boardHeight())

	minW := g.boardWidth() + 2
	if minW < minScreenW {
		minW = minScreenW
	}
	minH := hudHeight + g.boardHeight() + 2 + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step applies one tick of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.decayFlash()

	if g.tooSmall || g.ended {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.dialog == "" {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// The dialog is modal: any confirmation dismisses it and the frame is spent.
	if g.dialog != "" {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) || hasPress(in.Pointer) {
			g.dialog = ""
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionEnd) {
		g.ended = true
		return core.StepResult{State: g.State()}
	}

	var notice string
	for _, ev := range in.Pointer {
		if msg := g.handlePointer(ev); msg != "" {
			notice = msg
		}
		if g.dialog != "" {
			return core.StepResult{State: g.State(), Notice: notice}
		}
	}
	if msg := g.handleKeys(in); msg != "" {
		notice = msg
	}

	return core.StepResult{State: g.State(), Notice: notice}
}

// handlePointer maps a mouse gesture to Begin/Continue/Finish.
func (g *Game) handlePointer(ev core.PointerEvent) string {
	c, ok := g.cellAt(ev.X, ev.Y)
	if !ok {
		return ""
	}
	g.cursor = c

	switch ev.Kind {
	case core.PointerPress:
		g.session.Begin(c.X, c.Y)
	case core.PointerMotion:
		if g.session.Selection().Selecting() {
			g.session.Continue(c.X, c.Y)
		}
	case core.PointerRelease:
		if g.session.Selection().Selecting() {
			return g.applyFinish(g.session.Finish(c.X, c.Y))
		}
	}
	return ""
}

// handleKeys drives the same gestures from the keyboard cursor.
func (g *Game) handleKeys(in core.InputFrame) string {
	sel := g.session.Selection()

	dx, dy := 0, 0
	switch {
	case in.Has(core.ActionUp):
		dy = -1
	case in.Has(core.ActionDown):
		dy = 1
	case in.Has(core.ActionLeft):
		dx = -1
	case in.Has(core.ActionRight):
		dx = 1
	}
	if dx != 0 || dy != 0 {
		grid := g.session.Grid()
		g.cursor = engine.C(
			core.Clamp(g.cursor.X+dx, 0, grid.Width()-1),
			core.Clamp(g.cursor.Y+dy, 0, grid.Height()-1),
		)
		if sel.Selecting() {
			g.session.Continue(g.cursor.X, g.cursor.Y)
		}
	}

	switch {
	case in.Has(core.ActionConfirm):
		if !sel.Selecting() {
			g.session.Begin(g.cursor.X, g.cursor.Y)
			return ""
		}
		return g.applyFinish(g.session.Finish(g.cursor.X, g.cursor.Y))
	case in.Has(core.ActionCancel), in.Has(core.ActionBack):
		if sel.Selecting() && sel.Len() == 1 {
			tail := sel.Tail()
			g.session.Finish(tail.X, tail.Y)
		}
	}
	return ""
}

// applyFinish records the visible effects of a finished chain and returns
// the dialog message, if the window moved.
func (g *Game) applyFinish(res engine.FinishResult) string {
	if !res.OK {
		return ""
	}
	for _, c := range res.Cleared {
		g.flash[c] = g.display.FlashTicks
	}
	for _, c := range res.Swept {
		g.flash[c] = g.display.FlashTicks
	}
	if res.Upgraded != nil {
		g.cursor = *res.Upgraded
	}
	if res.Shift == nil {
		return ""
	}
	g.dialog = res.Shift.Message
	return res.Shift.Message
}

func (g *Game) decayFlash() {
	for c, n := range g.flash {
		if n <= 1 {
			delete(g.flash, c)
			continue
		}
		g.flash[c] = n - 1
	}
}

// cellAt converts a screen position to a grid cell.
func (g *Game) cellAt(x, y int) (engine.Coord, bool) {
	if !g.board.Contains(x, y) {
		return engine.Coord{}, false
	}
	return engine.C((x-g.board.X)/g.display.CellWidth, (y-g.board.Y)/cellHeight), true
}

func hasPress(events []core.PointerEvent) bool {
	for _, ev := range events {
		if ev.Kind == core.PointerPress {
			return true
		}
	}
	return false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.session != nil {
		score = int(g.session.Score())
	}
	return core.GameState{
		Score:    score,
		GameOver: g.ended,
		Paused:   g.paused || g.tooSmall || g.dialog != "",
	}
}
