// Package ui provides ephemeral notifications for terminal views.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model holds the notification currently on screen.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// ClearNotificationMsg resets the notification.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a tea.Cmd that puts text on screen.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return text
	}
}

func expire(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Update consumes notification messages. A clear only removes the notification it was scheduled for.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case string:
		m.notification = msg
		m.notifiedAt = time.Now()
		return expire(m.notifiedAt)
	case ClearNotificationMsg:
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the notification on screen, if any.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + "\033[90m" + m.notification + "\033[0m"
	return strings.Join(lines, "\n")
}
