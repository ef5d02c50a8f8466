package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshInterval is how often the monitor re-queries duration and buffering.
const refreshInterval = 2 * time.Second

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *statefulBubble) Init() tea.Cmd {
	if b.state == monitorState {
		b.refresh()
		b.fetchRates()
	}
	return tea.Batch(b.spinnerC.Tick, tick())
}
