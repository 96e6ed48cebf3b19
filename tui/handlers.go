package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hlsplay/hlsplay/icon"
	"github.com/hlsplay/hlsplay/internal/ui"
	"github.com/hlsplay/hlsplay/log"
	"github.com/hlsplay/hlsplay/player"
	"github.com/hlsplay/hlsplay/referer"
	"github.com/hlsplay/hlsplay/session"
	"github.com/hlsplay/hlsplay/util"
	"github.com/samber/lo"
)

type (
	tickMsg         time.Time
	loadResultMsg   session.LoadResult
	engineEventMsg  player.Event
	eventsClosedMsg struct{}
	resumeDoneMsg   struct {
		position float64
		err      error
	}
)

// tick fires once; the handler re-arms it so polls never overlap.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent delivers the next engine event. The handler calls it again after each event.
func (b *statefulBubble) waitForEvent() tea.Cmd {
	events := b.session.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return engineEventMsg(ev)
	}
}

// loadHistory refills the history list from the store.
func (b *statefulBubble) loadHistory() tea.Cmd {
	entries := b.session.History().Entries()
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = &historyItem{index: i, entry: entry}
	}

	return b.historyC.SetItems(items)
}

// load starts req and runs its reachability check in the background.
func (b *statefulBubble) load(req session.LoadRequest) tea.Cmd {
	job, err := b.session.Load(req)
	if err != nil {
		return ui.NotifyError(err)
	}

	log.WithFields(log.Fields{"url": req.URL}).Info("loading stream")
	b.player = b.session.State()
	b.newState(loadingState)

	return tea.Batch(b.spinnerC.Tick, b.loadHistory(), func() tea.Msg {
		return loadResultMsg(job())
	})
}

// resume seeks to position off the control goroutine.
func (b *statefulBubble) resume(position float64) tea.Cmd {
	sess := b.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return resumeDoneMsg{position: position, err: sess.Resume(ctx, position)}
	}
}

func (b *statefulBubble) handleLoadResult(res session.LoadResult) tea.Cmd {
	err := b.session.Finish(res)
	if errors.Is(err, session.ErrSuperseded) || errors.Is(err, session.ErrClosing) {
		return nil
	}

	b.player = b.session.State()
	if err != nil {
		log.WithFields(log.Fields{"url": res.Request.URL}).Errorf("load failed: %v", err)
		b.raiseError(err)
		return nil
	}

	b.setState(playingState)

	position, ok := b.session.ResumeOffer().Get()
	if !ok {
		return nil
	}

	if b.session.Config().ResumePrompt {
		b.resumeAt = position
		b.newState(resumeState)
		return nil
	}

	return b.resume(position)
}

func (b *statefulBubble) handleTick() tea.Cmd {
	b.player = b.session.Tick()
	return tick()
}

func (b *statefulBubble) handleEngineEvent(ev player.Event) tea.Cmd {
	wasActive := b.player.State.Active()
	b.player = b.session.HandleEvent(ev)

	cmds := []tea.Cmd{b.waitForEvent()}
	if wasActive && b.player.State == player.Stopped {
		cmds = append(cmds, b.loadHistory(), ui.Notify(icon.Get(icon.Stop)+" end of stream"))
	}

	return tea.Batch(cmds...)
}

func (b *statefulBubble) handleResumeDone(msg resumeDoneMsg) tea.Cmd {
	if msg.err != nil {
		return ui.NotifyError(fmt.Errorf("resume failed: %w", msg.err))
	}

	return ui.Notify(icon.Get(icon.Success) + " resumed at " + util.FormatTime(msg.position))
}

func (b *statefulBubble) handleTogglePause() tea.Cmd {
	paused, refresh, err := b.session.TogglePause()
	b.player = b.session.State()
	if err != nil {
		return ui.NotifyError(err)
	}

	if position, ok := refresh.Get(); ok {
		return tea.Batch(ui.Notify(icon.Get(icon.Progress)+" stream refreshed"), b.resume(position))
	}

	return ui.Notify(lo.Ternary(paused, icon.Get(icon.Pause)+" paused", icon.Get(icon.Play)+" playing"))
}

func (b *statefulBubble) handleSkip(seconds float64) tea.Cmd {
	if err := b.session.Skip(seconds); err != nil {
		return ui.NotifyError(err)
	}

	return ui.Notify(fmt.Sprintf("%+.0fs", seconds))
}

// handleJump seeks to a tenth of the duration per digit.
func (b *statefulBubble) handleJump(digit string) tea.Cmd {
	tenths, err := strconv.Atoi(digit)
	if err != nil {
		return nil
	}

	if err := b.session.SeekPercent(float64(tenths * 10)); err != nil {
		return ui.NotifyError(err)
	}
	return ui.Notify(fmt.Sprintf("%d%%", tenths*10))
}

func (b *statefulBubble) handleVolume(delta int) tea.Cmd {
	volume := util.Clamp(b.session.State().Volume+delta, 0, 100)
	if err := b.session.SetVolume(volume); err != nil {
		return ui.NotifyError(err)
	}

	b.player = b.session.State()
	return ui.Notify(fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), b.player.Volume))
}

func (b *statefulBubble) handleMute() tea.Cmd {
	volume, err := b.session.ToggleMute()
	b.player = b.session.State()
	if err != nil {
		return ui.NotifyError(err)
	}

	if volume == 0 {
		return ui.Notify(icon.Get(icon.Mute) + " muted")
	}
	return ui.Notify(fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), volume))
}

func (b *statefulBubble) handleNextTrack() tea.Cmd {
	track, err := b.session.CycleVideoTrack()
	if err != nil {
		return ui.NotifyError(err)
	}

	b.player = b.session.State()
	return ui.Notify("quality " + track.Label())
}

func (b *statefulBubble) handleRecord() tea.Cmd {
	path, recording, err := b.session.ToggleRecording()
	b.player = b.session.State()
	if err != nil {
		return ui.NotifyError(err)
	}

	if recording {
		return ui.Notify(icon.Get(icon.Record) + " recording to " + path)
	}
	return ui.Notify(icon.Get(icon.Success) + " saved " + path)
}

func (b *statefulBubble) handleStop() tea.Cmd {
	if err := b.session.Stop(); err != nil {
		return ui.NotifyError(err)
	}

	b.player = b.session.State()
	b.statesHistory.Clear()
	b.setState(historyState)
	return b.loadHistory()
}

// handleQuit closes the session before leaving so the final position is saved.
func (b *statefulBubble) handleQuit() tea.Cmd {
	if err := b.session.Close(); err != nil {
		log.Warnf("close session: %v", err)
	}
	return tea.Quit
}

func (b *statefulBubble) handleRemove() tea.Cmd {
	item, ok := b.historyC.SelectedItem().(*historyItem)
	if !ok {
		return nil
	}

	b.session.History().DeleteAt(item.index)
	return tea.Batch(b.loadHistory(), ui.Notify(icon.Get(icon.Success)+" removed "+item.entry.Title()))
}

func (b *statefulBubble) handleClear() tea.Cmd {
	b.session.History().Clear()
	b.previousState()
	return tea.Batch(b.loadHistory(), ui.Notify(icon.Get(icon.Success)+" history cleared"))
}

func (b *statefulBubble) handleSubmitInput() tea.Cmd {
	if err := referer.Remember(b.refererC.Value()); err != nil {
		log.Warnf("remember referer: %v", err)
	}

	return b.load(session.LoadRequest{
		URL:       b.urlC.Value(),
		Referer:   b.refererC.Value(),
		UserAgent: b.options.UserAgent,
	})
}
