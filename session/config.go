package session

import (
	"time"

	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/where"
	"github.com/spf13/viper"
)

// Config tunes a Session.
type Config struct {
	// SaveHistory enables remembering streams and their positions.
	SaveHistory bool
	// ResumePrompt asks before jumping to a saved position instead of resuming silently.
	ResumePrompt bool
	// ResumeThreshold is the saved position, in seconds, a stream has to exceed to be resumed.
	ResumeThreshold float64
	// CheckpointInterval is the minimum wall-clock time between two progress writes.
	CheckpointInterval time.Duration
	// PauseRefreshThreshold reloads the stream when unpausing after a longer pause. Zero disables it.
	PauseRefreshThreshold time.Duration
	// SeekStep is the number of seconds a skip moves by.
	SeekStep float64
	// RecordingDir receives stream recordings.
	RecordingDir string
	// Referer and UserAgent are used when a load request leaves them empty.
	Referer   string
	UserAgent string
}

// DefaultConfig mirrors the configuration defaults.
func DefaultConfig() Config {
	return Config{
		SaveHistory:           true,
		ResumePrompt:          true,
		ResumeThreshold:       5,
		CheckpointInterval:    5 * time.Second,
		PauseRefreshThreshold: 300 * time.Second,
		SeekStep:              10,
	}
}

// ConfigFromViper reads the session settings from the loaded configuration.
func ConfigFromViper() Config {
	seconds := func(k string) time.Duration {
		return time.Duration(viper.GetFloat64(k) * float64(time.Second))
	}

	return Config{
		SaveHistory:           viper.GetBool(key.HistorySave),
		ResumePrompt:          viper.GetBool(key.PlayerResumePrompt),
		ResumeThreshold:       viper.GetFloat64(key.PlayerResumeThreshold),
		CheckpointInterval:    seconds(key.PlayerCheckpointInterval),
		PauseRefreshThreshold: seconds(key.CachePauseRefreshThreshold),
		SeekStep:              viper.GetFloat64(key.PlayerSeekStep),
		RecordingDir:          where.Recordings(),
		Referer:               viper.GetString(key.PlayerReferer),
		UserAgent:             viper.GetString(key.PlayerUserAgent),
	}
}
