// Package tui provides the Bubble Tea integration for the scenario viewer.
// It handles the terminal UI loop, input mapping and run recording.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Playback rate bounds in ticks per second.
const (
	minTickRate = 1
	maxTickRate = 400
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate < minTickRate {
		tickRate = minTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
