package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hlsplay/hlsplay/player"
	"github.com/hlsplay/hlsplay/referer"
	"github.com/hlsplay/hlsplay/session"
)

// Update routes msg to the handlers: global keys and async results first, then the current state.
func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.notifier.Update(msg); ok {
		return b, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tickMsg:
		return b, b.handleTick()
	case engineEventMsg:
		return b, b.handleEngineEvent(player.Event(msg))
	case eventsClosedMsg:
		return b, nil
	case loadResultMsg:
		return b, b.handleLoadResult(session.LoadResult(msg))
	case resumeDoneMsg:
		return b, b.handleResumeDone(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, b.handleQuit()
		}

		// text inputs and the list filter swallow every other key
		if b.typing() {
			break
		}

		if key.Matches(msg, b.keymap.quit) && b.state != resumeState && b.state != confirmClearState {
			return b, b.handleQuit()
		}
	}

	switch b.state {
	case historyState:
		return b.updateHistory(msg)
	case inputState:
		return b.updateInput(msg)
	case loadingState:
		return b.updateLoading(msg)
	case playingState:
		return b.updatePlaying(msg)
	case resumeState:
		return b.updateResume(msg)
	case confirmClearState:
		return b.updateConfirmClear(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

// typing reports whether keys are going into a text field.
func (b *statefulBubble) typing() bool {
	return b.state == inputState || (b.state == historyState && b.historyC.FilterState() == list.Filtering)
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && b.historyC.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, b.keymap.confirm):
			item, ok := b.historyC.SelectedItem().(*historyItem)
			if !ok {
				return b, nil
			}
			return b, b.load(session.LoadRequest{
				URL:       item.entry.URL,
				Name:      item.entry.Name,
				Referer:   b.options.Referer,
				UserAgent: b.options.UserAgent,
			})
		case key.Matches(msg, b.keymap.openURL):
			b.urlC.SetValue("")
			b.refererC.SetSuggestions(referer.SuggestMany(""))
			b.newState(inputState)
			return b, b.focusURL()
		case key.Matches(msg, b.keymap.nowPlaying):
			if b.player.State.Active() {
				b.newState(playingState)
			}
			return b, nil
		case key.Matches(msg, b.keymap.remove):
			return b, b.handleRemove()
		case key.Matches(msg, b.keymap.clearAll):
			if len(b.historyC.Items()) > 0 {
				b.newState(confirmClearState)
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.back):
			b.urlC.Blur()
			b.refererC.Blur()
			b.previousState()
			return b, nil
		case key.Matches(msg, b.keymap.nextField):
			if b.urlC.Focused() {
				return b, b.focusReferer()
			}
			return b, b.focusURL()
		case key.Matches(msg, b.keymap.confirm):
			return b, b.handleSubmitInput()
		}
	}

	var cmd tea.Cmd
	if b.refererC.Focused() {
		b.refererC, cmd = b.refererC.Update(msg)
	} else {
		b.urlC, cmd = b.urlC.Update(msg)
	}
	return b, cmd
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, b.keymap.back) {
		return b, b.handleStop()
	}

	return b, nil
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	step := b.session.Config().SeekStep

	switch {
	case key.Matches(keyMsg, b.keymap.playPause):
		return b, b.handleTogglePause()
	case key.Matches(keyMsg, b.keymap.skipBack):
		return b, b.handleSkip(-step)
	case key.Matches(keyMsg, b.keymap.skipForward):
		return b, b.handleSkip(step)
	case key.Matches(keyMsg, b.keymap.jump):
		return b, b.handleJump(keyMsg.String())
	case key.Matches(keyMsg, b.keymap.volumeUp):
		return b, b.handleVolume(5)
	case key.Matches(keyMsg, b.keymap.volumeDown):
		return b, b.handleVolume(-5)
	case key.Matches(keyMsg, b.keymap.mute):
		return b, b.handleMute()
	case key.Matches(keyMsg, b.keymap.nextTrack):
		return b, b.handleNextTrack()
	case key.Matches(keyMsg, b.keymap.record):
		return b, b.handleRecord()
	case key.Matches(keyMsg, b.keymap.stop):
		return b, b.handleStop()
	case key.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return b, nil
	case key.Matches(keyMsg, b.keymap.back):
		b.statesHistory.Clear()
		b.setState(historyState)
		return b, b.loadHistory()
	}

	return b, nil
}

func (b *statefulBubble) updateResume(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch {
	case key.Matches(keyMsg, b.keymap.yes):
		b.setState(playingState)
		return b, b.resume(b.resumeAt)
	case key.Matches(keyMsg, b.keymap.no):
		b.setState(playingState)
		return b, nil
	}

	return b, nil
}

func (b *statefulBubble) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch {
	case key.Matches(keyMsg, b.keymap.yes):
		return b, b.handleClear()
	case key.Matches(keyMsg, b.keymap.no):
		b.previousState()
		return b, nil
	}

	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, b.keymap.back) {
		b.lastError = nil
		b.statesHistory.Clear()
		b.setState(historyState)
		return b, b.loadHistory()
	}

	return b, nil
}
