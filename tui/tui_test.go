package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/history"
	"github.com/hlsplay/hlsplay/internal/ui"
	"github.com/hlsplay/hlsplay/network"
	"github.com/hlsplay/hlsplay/player"
	"github.com/hlsplay/hlsplay/session"
	. "github.com/smartystreets/goconvey/convey"
)

const stream = "https://cdn.example.com/live/index.m3u8"

type prober struct {
	err error
}

func (p *prober) Probe(context.Context, string, map[string]string) error {
	return p.err
}

func newTestBubble(p session.Prober, urls ...string) *statefulBubble {
	filesystem.SetMemMapFs()

	store := history.Open(filepath.Join("/", "cfg", "history.json"))
	for i := len(urls) - 1; i >= 0; i-- {
		store.Upsert(urls[i], "")
	}

	sess := session.New(player.NewFacade(nil), store, p, session.DefaultConfig())
	b := newBubble(sess, &Options{})
	b.setState(historyState)
	b.resize(100, 40)
	run(b.loadHistory())
	return b
}

// run executes cmd and flattens batches. Commands that sleep must not reach it.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}

	return []tea.Msg{msg}
}

func press(b *statefulBubble, keys string) tea.Cmd {
	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}

	_, cmd := b.Update(msg)
	return cmd
}

func loadResult(msgs []tea.Msg) (loadResultMsg, bool) {
	for _, msg := range msgs {
		if res, ok := msg.(loadResultMsg); ok {
			return res, true
		}
	}
	return loadResultMsg{}, false
}

func TestHistoryState(t *testing.T) {
	Convey("Given a bubble with two history entries", t, func() {
		b := newTestBubble(nil, stream, "https://b.example.com/x.m3u8")

		Convey("It should list them newest first", func() {
			So(b.state, ShouldEqual, historyState)
			So(len(b.historyC.Items()), ShouldEqual, 2)
			So(b.historyC.Items()[0].(*historyItem).entry.URL, ShouldEqual, stream)
		})

		Convey("When d is pressed", func() {
			run(press(b, "d"))

			Convey("The selected entry should be removed from the store", func() {
				So(b.session.History().Len(), ShouldEqual, 1)
				So(len(b.historyC.Items()), ShouldEqual, 1)
				So(b.session.History().Get(stream).IsPresent(), ShouldBeFalse)
			})
		})

		Convey("When D is pressed", func() {
			press(b, "D")

			Convey("It should ask for confirmation", func() {
				So(b.state, ShouldEqual, confirmClearState)
				So(b.View(), ShouldContainSubstring, "Remove all 2 entries?")
			})

			Convey("And n is pressed it should keep the history", func() {
				press(b, "n")
				So(b.state, ShouldEqual, historyState)
				So(b.session.History().Len(), ShouldEqual, 2)
			})

			Convey("And y is pressed it should clear the history", func() {
				run(press(b, "y"))
				So(b.state, ShouldEqual, historyState)
				So(b.session.History().Len(), ShouldEqual, 0)
				So(len(b.historyC.Items()), ShouldEqual, 0)
			})
		})

		Convey("When q is pressed", func() {
			msgs := run(press(b, "q"))

			Convey("It should quit and close the session", func() {
				So(msgs, ShouldContain, tea.QuitMsg{})
				_, open := <-b.session.Events()
				So(open, ShouldBeFalse)
			})
		})
	})

	Convey("Given an empty history", t, func() {
		b := newTestBubble(nil)

		Convey("D should do nothing", func() {
			press(b, "D")
			So(b.state, ShouldEqual, historyState)
		})

		Convey("p should not open the player without a stream", func() {
			press(b, "p")
			So(b.state, ShouldEqual, historyState)
		})
	})
}

func TestInputState(t *testing.T) {
	Convey("Given the url form", t, func() {
		b := newTestBubble(nil)
		press(b, "o")

		Convey("It should focus the url field", func() {
			So(b.state, ShouldEqual, inputState)
			So(b.urlC.Focused(), ShouldBeTrue)
		})

		Convey("Typing q should not quit", func() {
			msgs := run(press(b, "q"))
			So(msgs, ShouldNotContain, tea.QuitMsg{})
			So(b.urlC.Value(), ShouldEqual, "q")
		})

		Convey("Tab should switch to the referer field", func() {
			press(b, "tab")
			So(b.refererC.Focused(), ShouldBeTrue)
			So(b.urlC.Focused(), ShouldBeFalse)
		})

		Convey("Esc should go back to the history", func() {
			press(b, "esc")
			So(b.state, ShouldEqual, historyState)
		})

		Convey("Submitting an empty url should notify and stay", func() {
			msgs := run(press(b, "enter"))
			So(b.state, ShouldEqual, inputState)
			So(msgs, ShouldHaveLength, 1)
			So(msgs[0].(ui.NotificationMsg).Error, ShouldBeTrue)
			So(msgs[0].(ui.NotificationMsg).Text, ShouldEqual, session.ErrEmptyURL.Error())
		})

		Convey("Submitting a url should start loading and record it", func() {
			b.urlC.SetValue(stream)
			b.refererC.SetValue("https://site.example.com/")
			msgs := run(press(b, "enter"))

			So(b.state, ShouldEqual, loadingState)
			So(b.session.Current().Referer, ShouldEqual, "https://site.example.com/")
			So(b.session.History().Get(stream).IsPresent(), ShouldBeTrue)

			_, ok := loadResult(msgs)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestLoading(t *testing.T) {
	Convey("Given a stream that fails the reachability check", t, func() {
		b := newTestBubble(&prober{err: &network.StatusError{Code: 404}}, stream)
		res, ok := loadResult(run(press(b, "enter")))
		So(ok, ShouldBeTrue)

		Convey("The result should move to the error screen", func() {
			b.Update(res)

			So(b.state, ShouldEqual, errorState)
			var statusErr *network.StatusError
			So(errors.As(b.lastError, &statusErr), ShouldBeTrue)
			So(statusErr.Code, ShouldEqual, 404)
			So(b.View(), ShouldContainSubstring, "HTTP 404")
			So(b.session.State().State, ShouldEqual, player.Stopped)

			Convey("And esc should return to the history", func() {
				run(press(b, "esc"))
				So(b.state, ShouldEqual, historyState)
				So(b.lastError, ShouldBeNil)
			})
		})
	})

	Convey("Given a reachable stream without an engine", t, func() {
		b := newTestBubble(&prober{}, stream)
		res, ok := loadResult(run(press(b, "enter")))
		So(ok, ShouldBeTrue)
		So(b.View(), ShouldContainSubstring, "Loading")

		Convey("Starting playback should fail with no engine", func() {
			b.Update(res)
			So(b.state, ShouldEqual, errorState)
			So(errors.Is(b.lastError, player.ErrNoEngine), ShouldBeTrue)
		})

		Convey("Esc while loading should abandon the load", func() {
			run(press(b, "esc"))
			So(b.state, ShouldEqual, historyState)

			b.Update(res)
			So(b.state, ShouldEqual, historyState)
			So(b.lastError, ShouldBeNil)
		})
	})
}

func TestEngineEvents(t *testing.T) {
	Convey("Given a bubble with nothing playing", t, func() {
		b := newTestBubble(nil, "https://a/1.m3u8")

		Convey("When an engine event arrives", func() {
			_, cmd := b.Update(engineEventMsg(player.Event{Kind: player.EventEndFile, Reason: "eof"}))

			Convey("Then it is applied and the next event is awaited", func() {
				So(cmd, ShouldNotBeNil)
				So(b.state, ShouldEqual, historyState)
				So(b.player.State, ShouldEqual, player.Idle)
			})
		})

		Convey("When a buffering event arrives", func() {
			b.Update(engineEventMsg(player.Event{Kind: player.EventPausedForCache, Active: true}))

			Convey("Then an idle player does not show buffering", func() {
				So(b.player.Buffering, ShouldBeFalse)
			})
		})
	})
}

func TestView(t *testing.T) {
	Convey("Given the now playing screen", t, func() {
		b := newTestBubble(nil)
		b.setState(playingState)
		b.player = player.PlayerState{
			URL:          stream,
			State:        player.Playing,
			Position:     3725,
			Volume:       80,
			RawInputRate: 2 * 1024 * 1024,
			VideoTrack:   2,
			Recording:    "/recordings/stream.ts",
		}

		Convey("A live stream should show its position and details", func() {
			view := b.View()
			So(view, ShouldContainSubstring, "Now Playing")
			So(view, ShouldContainSubstring, "01:02:05")
			So(view, ShouldContainSubstring, "LIVE")
			So(view, ShouldContainSubstring, "80%")
			So(view, ShouldContainSubstring, "track 2")
			So(view, ShouldContainSubstring, "REC")
		})

		Convey("A stream with a duration should show both times", func() {
			b.player.Duration = 7200
			So(b.View(), ShouldContainSubstring, "01:02:05 / 02:00:00")
		})

		Convey("Buffering should be shown unless paused", func() {
			b.player.Buffering = true
			So(b.statusLine(), ShouldContainSubstring, "buffering")

			b.player.State = player.Paused
			So(b.statusLine(), ShouldNotContainSubstring, "buffering")
			So(b.statusLine(), ShouldContainSubstring, "Paused")
		})
	})
}

func TestPlayingKeys(t *testing.T) {
	Convey("Given the player screen with nothing playing", t, func() {
		b := newTestBubble(nil)
		b.setState(playingState)

		notification := func(keys string) ui.NotificationMsg {
			msgs := run(press(b, keys))
			So(msgs, ShouldHaveLength, 1)
			return msgs[0].(ui.NotificationMsg)
		}

		Convey("Seeking keys should report that nothing is playing", func() {
			for _, keys := range []string{"5", "0"} {
				msg := notification(keys)
				So(msg.Error, ShouldBeTrue)
				So(msg.Text, ShouldEqual, session.ErrNothingPlaying.Error())
			}
		})

		Convey("Recording should fail without an engine", func() {
			msg := notification("r")
			So(msg.Error, ShouldBeTrue)
			So(msg.Text, ShouldEqual, player.ErrNoEngine.Error())
		})

		Convey("Esc should go back to the history", func() {
			run(press(b, "esc"))
			So(b.state, ShouldEqual, historyState)
		})
	})
}

func TestHistoryItem(t *testing.T) {
	Convey("Given a history item", t, func() {
		item := &historyItem{entry: history.Entry{
			URL:       stream,
			Name:      "Channel One",
			Timestamp: time.Now().Add(-2 * time.Hour).Format(history.TimestampLayout),
		}}

		Convey("It should be titled by name and filterable by url", func() {
			So(item.Title(), ShouldEqual, "Channel One")
			So(strings.Contains(item.FilterValue(), stream), ShouldBeTrue)
		})

		Convey("A new entry should be marked as not started", func() {
			So(item.Description(), ShouldContainSubstring, "not started")
			So(item.Description(), ShouldContainSubstring, "2 hours ago")
		})

		Convey("A started entry should show its position", func() {
			item.entry.LastPosition = 95
			So(item.Description(), ShouldContainSubstring, "00:01:35")
		})
	})

	Convey("Relative times should be quantified", t, func() {
		So(relative(10*time.Second), ShouldEqual, "just now")
		So(relative(time.Minute), ShouldEqual, "1 minute ago")
		So(relative(49*time.Hour), ShouldEqual, "2 days ago")
	})
}
