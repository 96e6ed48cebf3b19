package player

import (
	"errors"
	"sync"
)

var errFake = errors.New("fake failure")

// fakeEngine records calls and serves canned property values.
type fakeEngine struct {
	mu sync.Mutex

	calls      []string
	headers    map[string]string
	userAgent  string
	loaded     string
	paused     bool
	volume     int
	vid        int
	record     string
	seeks      []float64
	seekFails  int
	terminated int

	timePos  *float64
	duration *float64
	cache    *CacheState
	tracks   []Track

	callback func(Event)
}

func ptr[T any](v T) *T {
	return &v
}

func (e *fakeEngine) note(call string) {
	e.calls = append(e.calls, call)
}

func (e *fakeEngine) SetHeaders(headers map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.note("SetHeaders")
	e.headers = headers
	return nil
}

func (e *fakeEngine) SetUserAgent(userAgent string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.note("SetUserAgent")
	e.userAgent = userAgent
	return nil
}

func (e *fakeEngine) LoadFile(url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.note("LoadFile")
	e.loaded = url
	return nil
}

func (e *fakeEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.note("Stop")
	e.loaded = ""
	return nil
}

func (e *fakeEngine) SetPause(paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.note("SetPause")
	e.paused = paused
	return nil
}

func (e *fakeEngine) Paused() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused, nil
}

func (e *fakeEngine) Seek(value float64, mode SeekMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.note("Seek " + mode.String())
	e.seeks = append(e.seeks, value)
	if e.seekFails > 0 {
		e.seekFails--
		return errFake
	}
	return nil
}

func (e *fakeEngine) SetVolume(volume int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = volume
	return nil
}

func (e *fakeEngine) TimePos() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timePos == nil {
		return 0, ErrNotReady
	}
	return *e.timePos, nil
}

func (e *fakeEngine) Duration() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.duration == nil {
		return 0, ErrNotReady
	}
	return *e.duration, nil
}

func (e *fakeEngine) DemuxerCacheTime() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timePos == nil {
		return 0, ErrNotReady
	}
	return *e.timePos + 30, nil
}

func (e *fakeEngine) DemuxerCacheState() (CacheState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cache == nil {
		return CacheState{}, ErrNotReady
	}
	return *e.cache, nil
}

func (e *fakeEngine) TrackList() ([]Track, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tracks == nil {
		return nil, ErrNotReady
	}
	return e.tracks, nil
}

func (e *fakeEngine) SetVideoTrack(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vid = id
	return nil
}

func (e *fakeEngine) SetStreamRecord(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record = path
	return nil
}

func (e *fakeEngine) Seekable() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded != "", nil
}

func (e *fakeEngine) Observe(callback func(Event)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callback = callback
	return nil
}

func (e *fakeEngine) Terminate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terminated++
	return nil
}
