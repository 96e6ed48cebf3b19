package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hlsplay/hlsplay/session"
)

// Init starts the poll timer and the engine event pump, and loads the stream given on the
// command line.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		b.spinnerC.Tick,
		tick(),
		b.waitForEvent(),
		b.loadHistory(),
	}

	if b.options.URL != "" {
		cmds = append(cmds, b.load(session.LoadRequest{
			URL:       b.options.URL,
			Name:      b.options.Name,
			Referer:   b.options.Referer,
			UserAgent: b.options.UserAgent,
		}))
	}

	return tea.Batch(cmds...)
}
