// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/hlsplay/hlsplay/color"
	"github.com/hlsplay/hlsplay/constant"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerBinary, "mpv", "Path or name of the mpv executable")
	register(key.PlayerUserAgent, constant.DefaultUserAgent, "User-Agent preset sent with every request.\nAvailable presets are: Chrome, Firefox, Safari, Edge.\nAny other value is sent verbatim")
	register(key.PlayerReferer, "", "Referer header sent with every request.\nLeave empty to omit it")
	register(key.PlayerVolume, 100, "Initial volume. From 0 to 100")
	register(key.PlayerWindowID, "", "Native window handle mpv should render into.\nLeave empty to let mpv open its own window")
	register(key.PlayerSeekStep, 10, "Seconds skipped by the left and right keys")
	register(key.PlayerResumePrompt, true, "Ask before resuming a stream from its saved position")
	register(key.PlayerResumeThreshold, 5, "Saved positions at or below this many seconds are not offered for resume")
	register(key.PlayerCheckpointInterval, 5, "Seconds between playback position checkpoints")
	register(key.CacheMaxBytes, 100, "Demuxer forward cache size in MiB")
	register(key.CacheMaxBackBytes, 100, "Demuxer backward cache size in MiB")
	register(key.CachePauseRefreshThreshold, 300, "Reload the stream when resuming after a pause longer than this many seconds.\n0 disables the reload")
	register(key.HistorySave, true, "Remember opened streams and their playback positions")
	register(key.RecordingDir, "", "Directory recordings are written to.\nLeave empty to use the default location (see \"hlsplay where\")")
	register(key.NetworkTimeout, 10, "Timeout in seconds of the reachability check performed before playback")
	register(key.NetworkTLSFingerprint, false, "Use a browser TLS fingerprint for the reachability check")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUIShowURLs, true, "Show URLs under history entries")
	register(key.TUIRefererSuggestions, true, "Suggest previously used referers in the URL form")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
