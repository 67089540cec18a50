// Package tui provides the Bubble Tea integration for the connect puzzle.
// It handles the terminal UI loop, input mapping, saving and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultTickRate = 30
	maxTickRate     = 120
)

// TickMsg drives flash decay and the pointer drain of the running board.
type TickMsg time.Time

// tickInterval converts a tick rate to a frame interval. Out of range rates
// fall back to the default or are capped.
func tickInterval(rate int) time.Duration {
	switch {
	case rate <= 0:
		rate = defaultTickRate
	case rate > maxTickRate:
		rate = maxTickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
