// Package ui holds small bubbletea components shared by the TUI states.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hlsplay/hlsplay/style"
)

// NotificationDuration is how long a notification stays on screen.
const NotificationDuration = 3 * time.Second

// Notifier shows one short-lived message next to the status line.
type Notifier struct {
	text string
	seq  int
}

// NotificationMsg carries a new notification into Update.
type NotificationMsg struct {
	Text  string
	Error bool
}

// clearNotificationMsg expires the notification with the given sequence number. Newer
// notifications are left alone.
type clearNotificationMsg struct {
	seq int
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

// NotifyError returns a command that shows err in the error color.
func NotifyError(err error) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: err.Error(), Error: true}
	}
}

// Update handles notification messages and reports whether msg was one of them.
func (n *Notifier) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case NotificationMsg:
		n.seq++
		n.text = msg.Text
		if msg.Error {
			n.text = style.Fg(style.ErrorColor)(msg.Text)
		}

		seq := n.seq
		return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
			return clearNotificationMsg{seq: seq}
		}), true
	case clearNotificationMsg:
		if msg.seq == n.seq {
			n.text = ""
		}
		return nil, true
	}

	return nil, false
}

// Text returns the current notification, empty when there is none.
func (n *Notifier) Text() string {
	return n.text
}

// View appends the notification to line.
func (n *Notifier) View(line string) string {
	if n.text == "" {
		return line
	}
	return line + "  " + style.Faint(n.text)
}
