// Package ui shows short-lived notifications next to a bubbletea view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/podfetch/podfetch/style"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model holds the notification currently shown, if any.
type Model struct {
	text string

	// seq identifies the latest notification, so a stale clear does not hide a newer one.
	seq int
}

// Notification is a bubbletea message carrying the text to display.
type Notification string

// ClearNotificationMsg hides the notification it was scheduled for.
type ClearNotificationMsg struct {
	seq int
}

// Notify returns a tea.Cmd that shows msg until Lifetime has passed.
func Notify(msg string) tea.Cmd {
	return func() tea.Msg {
		return Notification(msg)
	}
}

func clearAfter(seq int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{seq: seq}
	})
}

// Update handles Notification and ClearNotificationMsg; other messages are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case Notification:
		m.seq++
		m.text = string(msg)
		return clearAfter(m.seq)
	case ClearNotificationMsg:
		if msg.seq == m.seq {
			m.text = ""
		}
	}
	return nil
}

// Active reports whether a notification is being displayed.
func (m *Model) Active() bool {
	return m.text != ""
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.text == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.text)
	return strings.Join(lines, "\n")
}
