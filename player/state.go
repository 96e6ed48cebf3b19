package player

// State is the facade's playback lifecycle.
type State int

const (
	Idle State = iota
	Loading
	Playing
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Active reports whether a stream is loaded or being loaded.
func (s State) Active() bool {
	return s == Loading || s == Playing || s == Paused
}

// PlayerState is a snapshot of what the facade knows about the current playback.
type PlayerState struct {
	URL          string
	State        State
	Position     float64
	Duration     float64
	Paused       bool
	Volume       int
	VideoTrack   int
	BufferedTime float64
	RawInputRate float64
	Buffering    bool
	// Recording is the stream dump target, empty when not recording.
	Recording string
}

// Progress returns Position as a fraction of Duration in [0, 1]. Streams without a known
// duration report zero.
func (s PlayerState) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(s.Position/s.Duration, 0), 1)
}
