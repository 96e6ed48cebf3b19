// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback - these keys shape how streams are requested from and rendered by mpv.
const (
	PlayerBinary             = "player.binary"
	PlayerUserAgent          = "player.user_agent"
	PlayerReferer            = "player.referer"
	PlayerVolume             = "player.volume"
	PlayerWindowID           = "player.wid"
	PlayerSeekStep           = "player.seek_step"
	PlayerResumePrompt       = "player.resume_prompt"
	PlayerResumeThreshold    = "player.resume_threshold"
	PlayerCheckpointInterval = "player.checkpoint_interval"
)

// Demuxer cache tuning, forwarded to mpv at startup.
const (
	CacheMaxBytes              = "cache.max_bytes"
	CacheMaxBackBytes          = "cache.max_back_bytes"
	CachePauseRefreshThreshold = "cache.pause_refresh_threshold"
)

// History Tracking - these keys configure the persistence of resume positions.
const (
	HistorySave = "history.save"
)

// Recording - side-channel dumps of the raw stream.
const (
	RecordingDir = "recording.dir"
)

// Network - reachability probe settings.
const (
	NetworkTimeout        = "network.timeout"
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUIShowURLs           = "tui.show_urls"
	TUIRefererSuggestions = "tui.referer_suggestions"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
