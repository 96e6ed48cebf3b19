package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hlsplay/hlsplay/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const (
	// ResumeAttempts is the total number of tries ResumeSeek makes.
	ResumeAttempts = 3
	// ResumeDelay separates consecutive ResumeSeek tries.
	ResumeDelay = time.Second
)

// Facade wraps an Engine with playback state tracking. Engine read failures are reported as
// absent values rather than errors.
type Facade struct {
	mu     sync.Mutex
	engine Engine
	state  PlayerState

	resumeDelay time.Duration
}

// FacadeOption configures a Facade.
type FacadeOption func(*Facade)

// WithResumeDelay overrides the pause between resume seek attempts.
func WithResumeDelay(d time.Duration) FacadeOption {
	return func(f *Facade) {
		f.resumeDelay = d
	}
}

// WithVolume sets the volume the facade starts with. It should match what the engine was
// started with.
func WithVolume(volume int) FacadeOption {
	return func(f *Facade) {
		f.state.Volume = min(max(volume, 0), 100)
	}
}

// NewFacade wraps engine. A nil engine yields a facade whose operations fail with ErrNoEngine.
func NewFacade(engine Engine, opts ...FacadeOption) *Facade {
	f := &Facade{
		engine:      engine,
		resumeDelay: ResumeDelay,
		state:       PlayerState{State: Idle, Volume: 100},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Ready reports whether an engine is attached.
func (f *Facade) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.engine != nil
}

// Snapshot returns a copy of the current state.
func (f *Facade) Snapshot() PlayerState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Prepare marks url as loading ahead of Play, while checks that don't involve the engine run.
func (f *Facade) Prepare(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = PlayerState{
		URL:       url,
		State:     Loading,
		Volume:    f.state.Volume,
		Paused:    f.state.Paused,
		Buffering: true,
	}
}

// Abort gives up on a load that never reached the engine.
func (f *Facade) Abort() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.State == Loading {
		f.markStopped()
	}
}

// Observe forwards engine events to callback. See Engine.Observe.
func (f *Facade) Observe(callback func(Event)) error {
	engine, err := f.current()
	if err != nil {
		return err
	}
	return engine.Observe(callback)
}

// Play applies the request headers and user agent, then loads url.
func (f *Facade) Play(url string, headers map[string]string, userAgent string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return ErrNoEngine
	}

	if err := f.engine.SetHeaders(headers); err != nil {
		return fmt.Errorf("set headers: %w", err)
	}
	if userAgent != "" {
		if err := f.engine.SetUserAgent(userAgent); err != nil {
			return fmt.Errorf("set user agent: %w", err)
		}
	}
	if f.state.Paused {
		if err := f.engine.SetPause(false); err != nil {
			return fmt.Errorf("unpause: %w", err)
		}
	}
	if err := f.engine.LoadFile(url); err != nil {
		return fmt.Errorf("load %s: %w", url, err)
	}

	f.state = PlayerState{
		URL:       url,
		State:     Loading,
		Volume:    f.state.Volume,
		Buffering: true,
	}

	log.WithFields(log.Fields{"url": url}).Info("loading stream")
	return nil
}

// Stop halts playback and any recording. Position, duration and buffering are reset.
func (f *Facade) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return ErrNoEngine
	}

	if f.state.Recording != "" {
		if err := f.engine.SetStreamRecord(""); err != nil {
			log.Warnf("stop recording: %v", err)
		}
	}

	if err := f.engine.Stop(); err != nil {
		return fmt.Errorf("stop: %w", err)
	}

	f.markStopped()
	return nil
}

func (f *Facade) markStopped() {
	f.state = PlayerState{
		URL:    f.state.URL,
		State:  lo.Ternary(f.state.State == Idle, Idle, Stopped),
		Volume: f.state.Volume,
	}
}

// TogglePause flips the pause flag and returns the new value.
func (f *Facade) TogglePause() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return false, ErrNoEngine
	}

	paused, err := f.engine.Paused()
	if err != nil {
		paused = f.state.Paused
	}

	paused = !paused
	if err := f.engine.SetPause(paused); err != nil {
		return f.state.Paused, fmt.Errorf("set pause: %w", err)
	}

	f.state.Paused = paused
	if paused {
		f.state.Buffering = false
		if f.state.State == Playing {
			f.state.State = Paused
		}
	} else if f.state.State == Paused {
		f.state.State = Playing
	}

	return paused, nil
}

// Seek moves the playback position.
func (f *Facade) Seek(value float64, mode SeekMode) error {
	engine, err := f.current()
	if err != nil {
		return err
	}
	return engine.Seek(value, mode)
}

// ResumeSeek jumps to position, retrying while the engine is not ready to seek. It makes at most
// ResumeAttempts tries and returns the last error when all of them fail.
func (f *Facade) ResumeSeek(ctx context.Context, position float64) error {
	engine, err := f.current()
	if err != nil {
		return err
	}

	attempt := 0
	_, err = backoff.Retry(ctx,
		func() (struct{}, error) {
			attempt++
			return struct{}{}, engine.Seek(position, SeekAbsolute)
		},
		backoff.WithBackOff(backoff.NewConstantBackOff(f.resumeDelay)),
		backoff.WithMaxTries(ResumeAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WithFields(log.Fields{
				"attempt":  attempt,
				"position": position,
			}).Warnf("resume seek failed, retrying in %s: %v", next, err)
		}),
	)
	if err != nil {
		return fmt.Errorf("resume at %.0fs: %w", position, err)
	}

	f.mu.Lock()
	f.state.Position = position
	f.mu.Unlock()
	return nil
}

// SetVolume clamps volume to 0-100 and applies it.
func (f *Facade) SetVolume(volume int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return ErrNoEngine
	}

	volume = min(max(volume, 0), 100)
	if err := f.engine.SetVolume(volume); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}

	f.state.Volume = volume
	return nil
}

// TimePos returns the current position in seconds.
func (f *Facade) TimePos() mo.Option[float64] {
	return query(f, Engine.TimePos)
}

// Duration returns the stream duration in seconds. Live streams usually have none.
func (f *Facade) Duration() mo.Option[float64] {
	return query(f, Engine.Duration)
}

// BufferedTime returns the timestamp of the last demuxed packet.
func (f *Facade) BufferedTime() mo.Option[float64] {
	return query(f, Engine.DemuxerCacheTime)
}

// DemuxerCacheState returns the demuxer cache state, including network throughput.
func (f *Facade) DemuxerCacheState() mo.Option[CacheState] {
	return query(f, Engine.DemuxerCacheState)
}

// Seekable reports whether the current stream accepts seeks.
func (f *Facade) Seekable() bool {
	return query(f, Engine.Seekable).OrElse(false)
}

// VideoTracks returns the video tracks of the current stream.
func (f *Facade) VideoTracks() []Track {
	tracks, ok := query(f, Engine.TrackList).Get()
	if !ok {
		return nil
	}
	return VideoOnly(tracks)
}

// SetVideoTrack selects a video track by id.
func (f *Facade) SetVideoTrack(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return ErrNoEngine
	}

	if err := f.engine.SetVideoTrack(id); err != nil {
		return fmt.Errorf("set video track %d: %w", id, err)
	}

	f.state.VideoTrack = id
	return nil
}

// StartRecording dumps the raw stream into path until StopRecording or Stop.
func (f *Facade) StartRecording(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return ErrNoEngine
	}
	if !f.state.State.Active() {
		return errors.New("nothing is playing")
	}

	if err := f.engine.SetStreamRecord(path); err != nil {
		return fmt.Errorf("start recording: %w", err)
	}

	f.state.Recording = path
	return nil
}

// StopRecording ends the stream dump and returns the file it was written to.
func (f *Facade) StopRecording() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return "", ErrNoEngine
	}

	path := f.state.Recording
	if path == "" {
		return "", nil
	}

	if err := f.engine.SetStreamRecord(""); err != nil {
		return "", fmt.Errorf("stop recording: %w", err)
	}

	f.state.Recording = ""
	return path, nil
}

// Poll refreshes position, duration, buffered time and throughput from the engine. Individual
// read failures leave the previous values in place.
func (f *Facade) Poll() PlayerState {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil || !f.state.State.Active() {
		return f.state
	}

	if pos, err := f.engine.TimePos(); err == nil {
		f.state.Position = pos
		if f.state.State == Loading {
			f.state.State = lo.Ternary(f.state.Paused, Paused, Playing)
			f.state.Buffering = false
		}
	} else if !errors.Is(err, ErrNotReady) {
		log.Debugf("poll time-pos: %v", err)
	}

	if dur, err := f.engine.Duration(); err == nil {
		f.state.Duration = dur
	}

	if buffered, err := f.engine.DemuxerCacheTime(); err == nil {
		f.state.BufferedTime = buffered
	}

	if cache, err := f.engine.DemuxerCacheState(); err == nil {
		f.state.RawInputRate = cache.RawInputRate
	} else {
		f.state.RawInputRate = 0
	}

	return f.state
}

// HandleEvent applies an engine event to the state. Buffering is never shown while paused.
func (f *Facade) HandleEvent(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch ev.Kind {
	case EventCoreIdle, EventPausedForCache:
		f.state.Buffering = ev.Active && !f.state.Paused && f.state.State.Active()
	case EventEOFReached:
		if ev.Active && f.state.State.Active() && f.state.State != Loading {
			f.endOfStream()
		}
	case EventEndFile:
		if (ev.Reason == "eof" || ev.Reason == "error") && f.state.State.Active() {
			f.endOfStream()
		}
	}
}

func (f *Facade) endOfStream() {
	if f.state.Recording != "" && f.engine != nil {
		if err := f.engine.SetStreamRecord(""); err != nil {
			log.Warnf("stop recording: %v", err)
		}
	}

	log.WithFields(log.Fields{"url": f.state.URL}).Info("end of stream")
	f.markStopped()
}

// Terminate releases the engine. It is safe to call when nothing was ever played and more than
// once.
func (f *Facade) Terminate() error {
	f.mu.Lock()
	engine := f.engine
	f.engine = nil
	f.state = PlayerState{State: Idle, Volume: f.state.Volume}
	f.mu.Unlock()

	if engine == nil {
		return nil
	}
	return engine.Terminate()
}

func (f *Facade) current() (Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return nil, ErrNoEngine
	}
	return f.engine, nil
}

func query[T any](f *Facade, read func(Engine) (T, error)) mo.Option[T] {
	engine, err := f.current()
	if err != nil {
		return mo.None[T]()
	}

	value, err := read(engine)
	if err != nil {
		return mo.None[T]()
	}
	return mo.Some(value)
}
