// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hlsplay/hlsplay/color"
)

// New returns an empty lipgloss.Style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a rendering function that applies the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Truncate returns a rendering function that constrains the output to width columns.
func Truncate(width int) func(string) string {
	return func(s string) string { return New().MaxWidth(width).Render(s) }
}

var (
	Faint     = func(s string) string { return New().Faint(true).Render(s) }
	Bold      = func(s string) string { return New().Bold(true).Render(s) }
	Italic    = func(s string) string { return New().Italic(true).Render(s) }
	Underline = func(s string) string { return New().Underline(true).Render(s) }
)

// Title renders a padded banner in the accent colors.
var Title = func(s string) string {
	return Colored(Text, AccentColor).Padding(0, 1).Render(s)
}

// ErrorTitle renders a padded banner in the error colors.
var ErrorTitle = func(s string) string {
	return Colored(color.New("230"), ErrorColor).Padding(0, 1).Render(s)
}

// Tag returns a rendering function that puts a string into a colored, padded block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}
