package style

import "github.com/charmbracelet/lipgloss"

// Palette - a dark player theme with a single blue accent.
var (
	Base    = lipgloss.Color("#0f0f0f")
	Surface = lipgloss.Color("#2d2d2d")
	Overlay = lipgloss.Color("#3d3d3d")
	Text    = lipgloss.Color("#ffffff")
	Subtext = lipgloss.Color("#aaaaaa")

	Accent    = lipgloss.Color("#007acc")
	AccentHi  = lipgloss.Color("#0098ff")
	AccentLow = lipgloss.Color("#005fa3")
	Orange    = lipgloss.Color("#ffa500")
	Red       = lipgloss.Color("#ff4444")
	Green     = lipgloss.Color("#4caf50")

	// Semantic mappings
	AccentColor    = Accent
	SecondaryColor = AccentHi
	SuccessColor   = Green
	WarningColor   = Orange
	ErrorColor     = Red
	FaintColor     = Subtext
	RecordColor    = Red

	// Playback state colors
	PlayingColor = Accent
	PausedColor  = Orange
	StoppedColor = lipgloss.Color("#ff0000")
	IdleColor    = Subtext

	BorderColor       = Overlay
	ActiveBorderColor = AccentColor
)
