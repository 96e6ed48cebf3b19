package network

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hlsplay/hlsplay/log"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 10 * time.Second

// FingerprintTransport speaks TLS with Chrome's Client Hello. CDNs behind bot protection
// reject Go's default handshake, so a HEAD that mpv (linked against a browser-like TLS stack)
// would pass could fail here.
//
// HTTP/2 is tried first; when it fails the request is retried over HTTP/1.1. Plain http URLs
// go through the regular transport.
type FingerprintTransport struct {
	h1    *http.Transport
	h2    *http2.Transport
	plain http.RoundTripper
}

// NewFingerprintTransport returns a transport verifying servers against roots, or the system
// pool when roots is nil.
func NewFingerprintTransport(roots *x509.CertPool) *FingerprintTransport {
	return &FingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, roots, "h2", "http/1.1")
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialTLS(ctx, network, addr, roots, "http/1.1")
			},
		},
		plain: Client.Transport,
	}
}

func (t *FingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.plain.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// only bodiless requests can be replayed safely
	if req.Body != nil && req.Body != http.NoBody {
		return nil, err
	}

	log.WithFields(log.Fields{"host": req.URL.Host}).Debugf("h2 failed, falling back to http/1.1: %v", err)
	return t.h1.RoundTrip(req)
}

// CloseIdleConnections releases pooled connections of both protocols.
func (t *FingerprintTransport) CloseIdleConnections() {
	t.h1.CloseIdleConnections()
	t.h2.CloseIdleConnections()
}

func dialTLS(ctx context.Context, network, addr string, roots *x509.CertPool, protos ...string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
