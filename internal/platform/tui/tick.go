// Package tui provides the Bubble Tea front end of the learning app: the
// screen router, the per-screen views, key mapping and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one frame of a running game.
// Gen identifies the game run that scheduled it; ticks from a run that
// has since been left are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickCmd returns a Bubble Tea command that sends a tick after one frame
// at the specified rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
