package connect

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-connect/internal/core"
	"github.com/vovakirdan/tui-connect/internal/games/connect/engine"
)

const (
	cellHeight   = 2 // Tile row plus a marker row for the cursor and flashes
	hudHeight    = 3
	footerHeight = 2
	minScreenW   = 40
)

func (g *Game) boardWidth() int {
	return g.variant.Width * g.display.CellWidth
}

func (g *Game) boardHeight() int {
	return g.variant.Height * cellHeight
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score, chain value and level window.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.variant.Title)

	left := g.board.X - 1
	if left < 0 {
		left = 0
	}
	dst.DrawTextColored(left, 1, fmt.Sprintf("Score: %d", g.session.Score()), core.ColorBrightWhite)

	sel := g.session.Selection()
	if sel.Selecting() && sel.Len() > 1 {
		chain := fmt.Sprintf("+%d", sel.TempScore())
		dst.DrawTextColored(left, 2, chain, core.ColorBrightGreen)
	}

	w := g.session.Window()
	info := fmt.Sprintf("Blocks %d-%d", engine.LevelValue(w.Min), engine.LevelValue(w.Max-1))
	infoX := g.board.Right() + 1 - len(info)
	if infoX < left {
		infoX = left
	}
	dst.DrawText(infoX, 1, info)

	top := fmt.Sprintf("Top %s", formatValue(engine.LevelValue(g.session.Grid().MaxLevel()), 8))
	topX := g.board.Right() + 1 - len(top)
	if topX < left {
		topX = left
	}
	dst.DrawTextColored(topX, 2, top, core.LevelColor(g.session.Grid().MaxLevel()))
}

// renderBoard draws the frame, the tiles and the marker row under each tile.
func (g *Game) renderBoard(dst *core.Screen) {
	frame := core.NewRect(g.board.X-1, g.board.Y-1, g.board.W+2, g.board.H+2)
	dst.DrawBox(frame, core.ColorGray)

	grid := g.session.Grid()
	sel := g.session.Selection()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			tile := grid.Get(x, y)
			sx := g.board.X + x*g.display.CellWidth
			sy := g.board.Y + y*cellHeight

			label := formatValue(tile.Value(), g.display.CellWidth-2)
			color := core.LevelColor(tile.Level)
			if tile.Selected {
				label = "[" + label + "]"
				color = core.ColorBrightWhite
			}
			dst.DrawTextColored(sx+(g.display.CellWidth-len(label))/2, sy, label, color)

			c := engine.C(x, y)
			switch {
			case c == g.cursor:
				marker := "^"
				if sel.Selecting() && sel.Tail() == c {
					marker = "^^"
				}
				dst.DrawTextColored(sx+(g.display.CellWidth-len(marker))/2, sy+1, marker, core.ColorBrightWhite)
			case g.flash[c] > 0:
				dst.DrawTextColored(sx+(g.display.CellWidth-1)/2, sy+1, "·", core.ColorGray)
			}
		}
	}
}

// renderFooter draws the control hints below the board.
func (g *Game) renderFooter(dst *core.Screen) {
	y := g.board.Bottom() + 1
	dst.DrawTextCentered(y, g.Controls())
}

// renderOverlays draws the dialog, pause and end-of-run boxes.
func (g *Game) renderOverlays(dst *core.Screen) {
	switch {
	case g.dialog != "":
		g.renderBox(dst, core.ColorBrightYellow, g.dialog, "[Enter] OK")
	case g.ended:
		g.renderBox(dst, core.ColorBrightRed, "RUN ENDED", fmt.Sprintf("Score: %d", g.session.Score()), "[R] New board  [Q] Quit")
	case g.paused:
		g.renderBox(dst, core.ColorBrightCyan, "PAUSED", "[P] Resume")
	}
}

// renderBox draws a bordered box with centered lines over the board.
func (g *Game) renderBox(dst *core.Screen, color core.Color, lines ...string) {
	inner := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > inner {
			inner = n
		}
	}
	w := inner + 4
	h := len(lines) + 2
	x := (g.screenW - w) / 2
	y := g.board.Y + (g.board.H-h)/2

	box := core.NewRect(x, y, w, h)
	dst.FillRect(box, ' ')
	dst.DrawBox(box, color)
	for i, l := range lines {
		lx := x + (w-len([]rune(l)))/2
		dst.DrawTextColored(lx, y+1+i, l, color)
	}
}

// Controls returns a one-line summary of the key bindings.
func (g *Game) Controls() string {
	return "Mouse drag or arrows+Enter: chain  X: drop  P: pause  E: end  Q: quit"
}

// formatValue shortens large tile values to fit width characters.
func formatValue(v int64, width int) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= width {
		return s
	}
	for _, unit := range []struct {
		div    int64
		suffix string
	}{
		{1 << 10, "k"},
		{1 << 20, "M"},
		{1 << 30, "G"},
		{1 << 40, "T"},
	} {
		s = strconv.FormatInt(v/unit.div, 10) + unit.suffix
		if len(s) <= width {
			return s
		}
	}
	return s
}
