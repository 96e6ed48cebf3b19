// Package network checks stream reachability before playback is handed to the engine.
package network

import (
	"net/http"
	"time"

	"github.com/hlsplay/hlsplay/key"
	"github.com/spf13/viper"
)

// DefaultTimeout bounds a reachability check when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Client is the shared HTTP client for everything that isn't fingerprinted.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 1 * time.Second
	return t
}

// NewClient returns a client with the given timeout. With fingerprint set, TLS connections
// present a browser Client Hello.
func NewClient(timeout time.Duration, fingerprint bool) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.RoundTripper(Client.Transport)
	if fingerprint {
		transport = NewFingerprintTransport(nil)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// ClientFromConfig builds the probe client from network.timeout and network.tls_fingerprint.
func ClientFromConfig() *http.Client {
	timeout := time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second
	return NewClient(timeout, viper.GetBool(key.NetworkTLSFingerprint))
}
