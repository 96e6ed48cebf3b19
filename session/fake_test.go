package session

import (
	"context"
	"sync"

	"github.com/hlsplay/hlsplay/player"
)

type fakeEngine struct {
	mu sync.Mutex

	loads     []string
	headers   map[string]string
	userAgent string
	paused    bool
	volume    int
	vid       int
	record    string
	seeks     []float64
	stops     int
	terms     int

	timePos  float64
	hasPos   bool
	duration float64
	tracks   []player.Track

	callback func(player.Event)
}

func (e *fakeEngine) SetHeaders(h map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.headers = h
	return nil
}

func (e *fakeEngine) SetUserAgent(ua string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.userAgent = ua
	return nil
}

func (e *fakeEngine) LoadFile(url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loads = append(e.loads, url)
	return nil
}

func (e *fakeEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stops++
	return nil
}

func (e *fakeEngine) SetPause(paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = paused
	return nil
}

func (e *fakeEngine) Paused() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused, nil
}

func (e *fakeEngine) Seek(value float64, mode player.SeekMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seeks = append(e.seeks, value)
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
	if !e.hasPos {
		return 0, player.ErrNotReady
	}
	return e.timePos, nil
}

func (e *fakeEngine) Duration() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.duration <= 0 {
		return 0, player.ErrNotReady
	}
	return e.duration, nil
}

func (e *fakeEngine) DemuxerCacheTime() (float64, error) {
	return 0, player.ErrNotReady
}

func (e *fakeEngine) DemuxerCacheState() (player.CacheState, error) {
	return player.CacheState{}, player.ErrNotReady
}

func (e *fakeEngine) TrackList() ([]player.Track, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
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
	return true, nil
}

func (e *fakeEngine) Observe(callback func(player.Event)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callback = callback
	return nil
}

func (e *fakeEngine) Terminate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.terms++
	return nil
}

func (e *fakeEngine) setPos(pos float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timePos = pos
	e.hasPos = true
}

type fakeProber struct {
	mu      sync.Mutex
	err     error
	calls   []string
	headers map[string]string
}

func (p *fakeProber) Probe(_ context.Context, url string, headers map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, url)
	p.headers = headers
	return p.err
}
