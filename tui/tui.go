// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hlsplay/hlsplay/session"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// URL starts playing immediately when set.
	URL       string
	Name      string
	Referer   string
	UserAgent string

	// Continue plays the most recent history entry.
	Continue bool
}

// Run starts the player session and the Bubble Tea program around it.
func Run(sess *session.Session, options *Options) error {
	if options.Continue && options.URL == "" {
		entries := sess.History().Entries()
		if len(entries) == 0 {
			return errors.New("history is empty, nothing to continue")
		}
		options.URL = entries[0].URL
		options.Name = entries[0].Name
	}

	bubble := newBubble(sess, options)
	bubble.setState(historyState)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
