// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "hlsplay"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// Repository is the GitHub owner/name releases are published under.
	Repository = "hlsplay/hlsplay"
)

// Build metadata, overridden at link time via -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
