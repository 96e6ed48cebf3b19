// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hlsplay/hlsplay/internal/ui"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/player"
	"github.com/hlsplay/hlsplay/session"
	"github.com/hlsplay/hlsplay/style"
	"github.com/hlsplay/hlsplay/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// statefulBubble holds the whole screen: the session it drives, the component models and the
// navigation history between states.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	urlC      textinput.Model
	refererC  textinput.Model
	historyC  list.Model
	progressC progress.Model
	helpC     help.Model

	session *session.Session
	player  player.PlayerState

	// resumeAt is the offered resume position while in resumeState.
	resumeAt float64

	lastError error

	width, height int
	notifier      *ui.Notifier

	options *Options
}

// raiseError records err and switches to the error screen.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState changes the state and the keymap together.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{
		loadingState,
		resumeState,
		confirmClearState,
		errorState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState returns to the last remembered state.
func (b *statefulBubble) previousState() {
	if s, ok := b.statesHistory.Pop(); ok {
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to the child components.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.progressC.Width = styledWidth
	b.urlC.Width = styledWidth
	b.refererC.Width = styledWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

// focusURL moves the cursor to the url field of the input form.
func (b *statefulBubble) focusURL() tea.Cmd {
	b.refererC.Blur()
	return b.urlC.Focus()
}

// focusReferer moves the cursor to the referer field of the input form.
func (b *statefulBubble) focusReferer() tea.Cmd {
	b.urlC.Blur()
	return b.refererC.Focus()
}

func newBubble(sess *session.Session, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		session:       sess,
		player:        sess.State(),
		notifier:      &ui.Notifier{},
		options:       options,
	}

	makeList := func(title string, titleStyle lipgloss.Style) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = titleStyle
		listC.Styles.NoItems = paddingStyle
		listC.StatusMessageLifetime = time.Hour * 999

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.urlC = textinput.New()
	bubble.urlC.Placeholder = "https://example.com/live/index.m3u8"
	bubble.urlC.CharLimit = 2048
	bubble.urlC.Prompt = "URL     › "

	bubble.refererC = textinput.New()
	bubble.refererC.Placeholder = "optional"
	bubble.refererC.CharLimit = 2048
	bubble.refererC.Prompt = "Referer › "
	bubble.refererC.SetValue(options.Referer)
	bubble.refererC.ShowSuggestions = true
	bubble.refererC.KeyMap.AcceptSuggestion = keymap.acceptSuggestion

	bubble.progressC = progress.New(
		progress.WithSolidFill(string(style.AccentColor)),
		progress.WithoutPercentage(),
	)

	bubble.historyC = makeList("History", lipgloss.NewStyle().
		Foreground(style.Text).
		Background(style.AccentColor).
		Padding(0, 1),
	)
	bubble.historyC.SetStatusBarItemName("stream", "streams")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
