package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hlsplay/hlsplay/icon"
	"github.com/hlsplay/hlsplay/player"
	"github.com/hlsplay/hlsplay/style"
	"github.com/hlsplay/hlsplay/util"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case historyState:
		return b.viewHistory()
	case inputState:
		return b.viewInput()
	case loadingState:
		return b.viewLoading()
	case playingState:
		return b.viewPlaying()
	case resumeState:
		return b.viewResume()
	case confirmClearState:
		return b.viewConfirmClear()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewHistory() string {
	view := b.historyC.View()

	if b.player.State.Active() || b.notifier.Text() != "" {
		view += "\n" + b.notifier.View(b.statusLine())
	}

	return listExtraPaddingStyle.Render(view)
}

func (b *statefulBubble) viewInput() string {
	return b.renderLines(true, []string{
		style.Title("Open Stream"),
		"",
		b.urlC.View(),
		b.refererC.View(),
		"",
		b.notifier.View(""),
	})
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(true, []string{
		style.Title("Loading"),
		"",
		style.Truncate(b.width)(b.spinnerC.View() + " " + b.title()),
		"",
		b.notifier.View(""),
	})
}

func (b *statefulBubble) viewPlaying() string {
	state := b.player

	position := util.FormatTime(state.Position)
	if state.Duration > 0 {
		position += " / " + util.FormatTime(state.Duration)
	} else {
		position += " " + style.Tag(style.Text, style.RecordColor)("LIVE")
	}

	details := []string{fmt.Sprintf("%s %d%%", icon.Get(volumeIcon(state.Volume)), state.Volume)}
	if state.RawInputRate > 0 {
		details = append(details, util.FormatSpeed(state.RawInputRate))
	}
	if state.BufferedTime > 0 {
		details = append(details, "buffer "+util.FormatTime(state.BufferedTime))
	}
	if state.VideoTrack > 0 {
		details = append(details, fmt.Sprintf("track %d", state.VideoTrack))
	}
	if state.Recording != "" {
		details = append(details, style.Tag(style.Text, style.RecordColor)(icon.Get(icon.Record)+" REC"))
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(style.Bold(b.title())),
		style.Truncate(b.width)(style.Faint(b.session.Current().URL)),
		"",
		b.statusLine(),
		b.progressC.ViewAs(state.Progress()),
		position,
		"",
		style.Truncate(b.width)(strings.Join(details, style.Faint(" • "))),
		"",
		b.notifier.View(""),
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResume() string {
	return b.renderLines(true, []string{
		style.Title("Resume"),
		"",
		style.Truncate(b.width)(b.title()),
		"",
		fmt.Sprintf("%s Continue from %s?", icon.Get(icon.Question), style.Fg(style.AccentColor)(util.FormatTime(b.resumeAt))),
	})
}

func (b *statefulBubble) viewConfirmClear() string {
	return b.renderLines(true, []string{
		style.ErrorTitle("Clear History"),
		"",
		fmt.Sprintf("%s Remove all %d entries?", icon.Get(icon.Question), len(b.historyC.Items())),
	})
}

func (b *statefulBubble) viewError() string {
	var message string
	if b.lastError != nil {
		message = b.lastError.Error()
	}

	errorMsg := wrap.String(style.Fg(style.ErrorColor)(message), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Could not play " + style.Truncate(b.width)(b.title()),
			"",
			errorMsg,
		},
	)
}

// statusLine renders the playback state with its color and a spinner while buffering.
func (b *statefulBubble) statusLine() string {
	state := b.player

	var (
		label string
		color lipgloss.Color
		glyph string
	)

	switch state.State {
	case player.Playing:
		label, color, glyph = "Playing", style.PlayingColor, icon.Get(icon.Play)
	case player.Paused:
		label, color, glyph = "Paused", style.PausedColor, icon.Get(icon.Pause)
	case player.Loading:
		label, color, glyph = "Loading", style.AccentColor, icon.Get(icon.Progress)
	case player.Stopped:
		label, color, glyph = "Stopped", style.StoppedColor, icon.Get(icon.Stop)
	default:
		label, color, glyph = "Idle", style.IdleColor, icon.Get(icon.Stop)
	}

	line := style.Fg(color)(glyph + " " + label)
	if state.Buffering && state.State != player.Paused {
		line += " " + b.spinnerC.View() + style.Faint(" buffering")
	}

	return line
}

func (b *statefulBubble) title() string {
	current := b.session.Current()
	if current.Name != "" {
		return current.Name
	}
	return current.URL
}

func volumeIcon(volume int) icon.Icon {
	if volume == 0 {
		return icon.Mute
	}
	return icon.Volume
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
