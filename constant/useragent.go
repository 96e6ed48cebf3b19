package constant

// UserAgents maps the selectable browser presets to the User-Agent header sent with every probe
// and forwarded to mpv.
var UserAgents = map[string]string{
	"Chrome":  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Firefox": "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Safari":  "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	"Edge":    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
}

// DefaultUserAgent is the preset used when none is configured.
const DefaultUserAgent = "Chrome"

// ResolveUserAgent returns the header value for a preset name. Anything that is not a known
// preset is treated as a literal User-Agent string.
func ResolveUserAgent(nameOrValue string) string {
	if nameOrValue == "" {
		return UserAgents[DefaultUserAgent]
	}
	if ua, ok := UserAgents[nameOrValue]; ok {
		return ua
	}
	return nameOrValue
}
