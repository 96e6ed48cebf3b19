// Package player drives an external playback engine and exposes a small, state-tracking facade
// over it. The production engine is mpv controlled through its JSON-IPC socket.
package player

import "errors"

var (
	// ErrNoEngine is returned by facade operations that need an engine when none is attached,
	// either because construction failed or because the facade was terminated.
	ErrNoEngine = errors.New("player engine is not running")

	// ErrNotReady reports that the engine has no value for a property yet, typically because
	// nothing is loaded.
	ErrNotReady = errors.New("property unavailable")
)

// SeekMode selects how a seek value is interpreted.
type SeekMode int

const (
	// SeekRelative moves by the given number of seconds.
	SeekRelative SeekMode = iota
	// SeekAbsolute jumps to the given position in seconds.
	SeekAbsolute
)

func (m SeekMode) String() string {
	if m == SeekAbsolute {
		return "absolute"
	}
	return "relative"
}

// CacheState is the subset of the demuxer cache state the player reports.
type CacheState struct {
	// RawInputRate is the network throughput in bytes per second.
	RawInputRate float64 `json:"raw-input-rate"`
	CacheEnd     float64 `json:"cache-end"`
	ForwardBytes int64   `json:"fw-bytes"`
	TotalBytes   int64   `json:"total-bytes"`
	EOF          bool    `json:"eof"`
	Underrun     bool    `json:"underrun"`
}

// EventKind enumerates the engine notifications the facade reacts to.
type EventKind int

const (
	// EventCoreIdle fires when the playback core stops or resumes consuming data.
	EventCoreIdle EventKind = iota
	// EventPausedForCache fires when playback stalls waiting for the network.
	EventPausedForCache
	// EventEOFReached fires when the end of the stream is reached while keep-open holds it.
	EventEOFReached
	// EventEndFile fires when the engine unloads the current file.
	EventEndFile
)

func (k EventKind) String() string {
	switch k {
	case EventCoreIdle:
		return "core-idle"
	case EventPausedForCache:
		return "paused-for-cache"
	case EventEOFReached:
		return "eof-reached"
	case EventEndFile:
		return "end-file"
	default:
		return "unknown"
	}
}

// Event is a single engine notification.
type Event struct {
	Kind EventKind
	// Active carries the boolean value of observed properties.
	Active bool
	// Reason is set for EventEndFile ("eof", "stop", "error", ...).
	Reason string
}

// Engine is the set of operations the facade needs from a playback engine.
// Each method maps to exactly one engine command or property.
type Engine interface {
	SetHeaders(headers map[string]string) error
	SetUserAgent(userAgent string) error
	LoadFile(url string) error
	Stop() error

	SetPause(paused bool) error
	Paused() (bool, error)

	Seek(value float64, mode SeekMode) error
	SetVolume(volume int) error

	TimePos() (float64, error)
	Duration() (float64, error)
	DemuxerCacheTime() (float64, error)
	DemuxerCacheState() (CacheState, error)

	TrackList() ([]Track, error)
	SetVideoTrack(id int) error

	SetStreamRecord(path string) error
	Seekable() (bool, error)

	// Observe registers callback for engine events. The callback runs on an engine-owned
	// goroutine and must not block.
	Observe(callback func(Event)) error

	// Terminate releases the engine. Calling it more than once is a no-op.
	Terminate() error
}
