// Package session coordinates the player facade and the history store for one interactive run.
//
// Every Session method is meant to be called from a single control goroutine (the TUI update
// loop). Blocking work is handed back to the caller as a function to run elsewhere, and its
// result comes back through Finish, so state is only ever mutated on the control goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hlsplay/hlsplay/constant"
	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/history"
	"github.com/hlsplay/hlsplay/log"
	"github.com/hlsplay/hlsplay/player"
	"github.com/hlsplay/hlsplay/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	// ErrClosing is returned once Close has been called.
	ErrClosing = errors.New("session is closing")
	// ErrEmptyURL rejects a load without a stream address.
	ErrEmptyURL = errors.New("stream url is empty")
	// ErrSuperseded marks a load result that a newer load or a stop has replaced.
	ErrSuperseded = errors.New("load superseded")
	// ErrNothingPlaying is returned by controls that need an active stream.
	ErrNothingPlaying = errors.New("nothing is playing")
)

const eventBuffer = 64

// Prober checks a stream before it is handed to the engine.
type Prober interface {
	Probe(ctx context.Context, url string, headers map[string]string) error
}

// LoadRequest describes a stream to open.
type LoadRequest struct {
	URL       string
	Name      string
	Referer   string
	UserAgent string
}

// Headers returns the request headers of the reachability check.
func (r LoadRequest) Headers() map[string]string {
	return map[string]string{
		"Referer":    r.Referer,
		"User-Agent": constant.ResolveUserAgent(r.UserAgent),
	}
}

// LoadResult is produced by the background part of Load.
type LoadResult struct {
	Generation uint64
	Request    LoadRequest
	Err        error
}

// Session owns one facade and one history store.
type Session struct {
	facade  *player.Facade
	history *history.Store
	prober  Prober
	cfg     Config
	now     func() time.Time

	generation     uint64
	closing        bool
	probing        bool
	current        LoadRequest
	lastCheckpoint time.Time
	pausedAt       time.Time
	previousVolume int

	eventsMu     sync.Mutex
	eventsClosed bool
	events       chan player.Event
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New wires a session and subscribes to the facade's engine events.
func New(facade *player.Facade, store *history.Store, prober Prober, cfg Config, opts ...Option) *Session {
	s := &Session{
		facade:         facade,
		history:        store,
		prober:         prober,
		cfg:            cfg,
		now:            time.Now,
		previousVolume: 100,
		events:         make(chan player.Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := facade.Observe(s.forward); err != nil && !errors.Is(err, player.ErrNoEngine) {
		log.Warnf("observe engine events: %v", err)
	}

	return s
}

// forward runs on the engine's event goroutine; it only queues.
func (s *Session) forward(ev player.Event) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()

	if s.eventsClosed {
		return
	}

	select {
	case s.events <- ev:
	default:
		log.Warnf("dropping engine event %s: queue full", ev.Kind)
	}
}

// Events delivers engine events. The channel is closed by Close.
func (s *Session) Events() <-chan player.Event {
	return s.events
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// History returns the store the session writes to.
func (s *Session) History() *history.Store {
	return s.history
}

// Current returns the most recent load request.
func (s *Session) Current() LoadRequest {
	return s.current
}

// State returns the facade state without polling the engine.
func (s *Session) State() player.PlayerState {
	return s.facade.Snapshot()
}

// Load validates req, stops whatever is playing and records the stream in the history. The
// returned job performs the reachability check and must be run off the control goroutine; its
// result goes to Finish.
func (s *Session) Load(req LoadRequest) (func() LoadResult, error) {
	if s.closing {
		return nil, ErrClosing
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return nil, ErrEmptyURL
	}
	if _, err := player.SanitizeMediaTarget(req.URL); err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	req.Referer = lo.Ternary(req.Referer == "", s.cfg.Referer, req.Referer)
	req.UserAgent = lo.Ternary(req.UserAgent == "", s.cfg.UserAgent, req.UserAgent)

	if s.facade.Snapshot().State.Active() {
		s.saveProgress()
		if err := s.facade.Stop(); err != nil {
			log.Warnf("stop before load: %v", err)
		}
	}

	if s.cfg.SaveHistory {
		s.history.Upsert(req.URL, req.Name)
	}

	s.generation++
	s.current = req
	s.pausedAt = time.Time{}
	s.probing = true
	s.facade.Prepare(req.URL)

	generation, prober := s.generation, s.prober
	return func() LoadResult {
		var err error
		if prober != nil && isRemote(req.URL) {
			err = prober.Probe(context.Background(), req.URL, req.Headers())
		}
		return LoadResult{Generation: generation, Request: req, Err: err}
	}, nil
}

// Finish hands a load result back to the control goroutine and starts playback. Results of
// superseded loads and results arriving after Close are dropped.
func (s *Session) Finish(res LoadResult) error {
	if s.closing {
		return ErrClosing
	}
	if res.Generation != s.generation {
		return ErrSuperseded
	}
	s.probing = false

	if res.Err != nil {
		s.facade.Abort()
		return res.Err
	}

	req := res.Request
	headers := lo.PickBy(map[string]string{"Referer": req.Referer}, func(_, v string) bool {
		return v != ""
	})

	if err := s.facade.Play(req.URL, headers, constant.ResolveUserAgent(req.UserAgent)); err != nil {
		s.facade.Abort()
		return err
	}

	s.lastCheckpoint = s.now()
	return nil
}

// ResumeOffer returns the saved position of the current stream when it is worth resuming.
func (s *Session) ResumeOffer() mo.Option[float64] {
	if !s.cfg.SaveHistory || s.current.URL == "" {
		return mo.None[float64]()
	}

	entry, ok := s.history.Get(s.current.URL).Get()
	if !ok || entry.LastPosition <= s.cfg.ResumeThreshold {
		return mo.None[float64]()
	}
	return mo.Some(entry.LastPosition)
}

// Resume seeks to position, retrying until the engine accepts it. It blocks and may run off the
// control goroutine.
func (s *Session) Resume(ctx context.Context, position float64) error {
	return s.facade.ResumeSeek(ctx, position)
}

// Tick polls the engine once and checkpoints progress when the interval has elapsed.
func (s *Session) Tick() player.PlayerState {
	state := s.facade.Poll()

	if state.State == player.Playing && state.Position > 0 &&
		s.now().Sub(s.lastCheckpoint) >= s.cfg.CheckpointInterval {
		s.checkpoint(state.Position)
	}

	return state
}

// HandleEvent applies an engine event drained from Events.
func (s *Session) HandleEvent(ev player.Event) player.PlayerState {
	before := s.facade.Snapshot()
	s.facade.HandleEvent(ev)
	after := s.facade.Snapshot()

	if before.State.Active() && after.State == player.Stopped && before.Position > 0 {
		s.checkpoint(before.Position)
	}

	return after
}

// TogglePause pauses or resumes. Resuming after a pause longer than the refresh threshold
// reloads the stream, because a live playlist has moved on by then; the returned option then
// holds the position to seek back to.
func (s *Session) TogglePause() (bool, mo.Option[float64], error) {
	if s.closing {
		return false, mo.None[float64](), ErrClosing
	}

	paused, err := s.facade.TogglePause()
	if err != nil {
		return paused, mo.None[float64](), err
	}

	if paused {
		s.pausedAt = s.now()
		s.saveProgress()
		return true, mo.None[float64](), nil
	}

	pausedFor := s.now().Sub(s.pausedAt)
	wasPaused := !s.pausedAt.IsZero()
	s.pausedAt = time.Time{}

	if !wasPaused || s.cfg.PauseRefreshThreshold <= 0 || pausedFor <= s.cfg.PauseRefreshThreshold {
		return false, mo.None[float64](), nil
	}

	position := s.facade.Snapshot().Position
	log.WithFields(log.Fields{"url": s.current.URL, "paused": pausedFor.String()}).Info("refreshing stream after long pause")

	req := s.current
	headers := lo.PickBy(map[string]string{"Referer": req.Referer}, func(_, v string) bool {
		return v != ""
	})
	if err := s.facade.Play(req.URL, headers, constant.ResolveUserAgent(req.UserAgent)); err != nil {
		return false, mo.None[float64](), fmt.Errorf("refresh: %w", err)
	}
	s.lastCheckpoint = s.now()

	if position <= 0 {
		return false, mo.None[float64](), nil
	}
	return false, mo.Some(position), nil
}

// Stop saves progress and halts playback. A load in flight is abandoned.
func (s *Session) Stop() error {
	s.generation++
	s.pausedAt = time.Time{}

	if s.probing {
		s.probing = false
		s.facade.Abort()
		return nil
	}
	if !s.facade.Snapshot().State.Active() {
		return nil
	}

	s.saveProgress()
	return s.facade.Stop()
}

// Skip seeks relative to the current position.
func (s *Session) Skip(seconds float64) error {
	if !s.facade.Snapshot().State.Active() {
		return ErrNothingPlaying
	}
	return s.facade.Seek(seconds, player.SeekRelative)
}

// SeekPercent seeks to a fraction of the duration, given in percent.
func (s *Session) SeekPercent(percent float64) error {
	state := s.facade.Snapshot()
	if !state.State.Active() {
		return ErrNothingPlaying
	}

	duration := s.facade.Duration().OrElse(state.Duration)
	if duration <= 0 {
		return errors.New("stream has no known duration")
	}

	percent = util.Clamp(percent, 0, 100)
	return s.facade.Seek(percent/100*duration, player.SeekAbsolute)
}

// SetVolume sets the volume, clamped to 0-100.
func (s *Session) SetVolume(volume int) error {
	return s.facade.SetVolume(volume)
}

// ToggleMute switches between silence and the volume before muting. It returns the new volume.
func (s *Session) ToggleMute() (int, error) {
	volume := s.facade.Snapshot().Volume
	if volume > 0 {
		s.previousVolume = volume
		return 0, s.facade.SetVolume(0)
	}

	restore := lo.Ternary(s.previousVolume > 0, s.previousVolume, 100)
	return restore, s.facade.SetVolume(restore)
}

// CycleVideoTrack selects the next video track. Streams with a single variant have nothing to
// cycle.
func (s *Session) CycleVideoTrack() (player.Track, error) {
	tracks := s.facade.VideoTracks()
	if len(tracks) < 2 {
		return player.Track{}, errors.New("no alternative video tracks")
	}

	current := s.facade.Snapshot().VideoTrack
	_, index, ok := lo.FindIndexOf(tracks, func(t player.Track) bool {
		return lo.Ternary(current > 0, t.ID == current, t.Selected)
	})
	if !ok {
		index = -1
	}

	next := tracks[(index+1)%len(tracks)]
	if err := s.facade.SetVideoTrack(next.ID); err != nil {
		return player.Track{}, err
	}
	return next, nil
}

// ToggleRecording starts dumping the stream into a new file under the recording directory, or
// stops the running dump. It returns the file and whether recording is now on.
func (s *Session) ToggleRecording() (string, bool, error) {
	if path, err := s.facade.StopRecording(); err != nil || path != "" {
		return path, false, err
	}

	state := s.facade.Snapshot()
	if state.State != player.Playing && state.State != player.Paused {
		return "", false, ErrNothingPlaying
	}

	dir := s.cfg.RecordingDir
	if err := filesystem.API().MkdirAll(dir, 0o750); err != nil {
		return "", false, fmt.Errorf("create recording dir: %w", err)
	}

	name := fmt.Sprintf("stream_%s.ts", s.now().Format("20060102_150405"))
	path := filepath.Join(dir, util.UniqueFilename(dir, name))

	if err := s.facade.StartRecording(path); err != nil {
		return "", false, err
	}

	log.WithFields(log.Fields{"path": path}).Info("recording started")
	return path, true, nil
}

// Close saves the final position and releases the engine. Later calls are no-ops.
func (s *Session) Close() error {
	if s.closing {
		return nil
	}
	s.closing = true
	s.generation++

	if s.facade.Snapshot().State.Active() {
		s.saveProgress()
	}

	err := s.facade.Terminate()

	s.eventsMu.Lock()
	s.eventsClosed = true
	close(s.events)
	s.eventsMu.Unlock()

	return err
}

// saveProgress records the engine's current position for the current stream.
func (s *Session) saveProgress() {
	position, ok := s.facade.TimePos().Get()
	if !ok {
		position = s.facade.Snapshot().Position
	}
	if position > 0 {
		s.checkpoint(position)
	}
}

func (s *Session) checkpoint(position float64) {
	s.lastCheckpoint = s.now()
	if !s.cfg.SaveHistory || s.current.URL == "" {
		return
	}
	s.history.UpdateProgress(s.current.URL, position)
}

func isRemote(target string) bool {
	u, err := url.Parse(target)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
