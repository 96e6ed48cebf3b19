package network

import (
	"context"
	"fmt"
	"net/http"
)

// StatusError is returned when the server answers the check with a 4xx or 5xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Prober checks that a stream URL answers before it is handed to the engine.
type Prober struct {
	client *http.Client
}

// NewProber returns a prober using client. Redirects are followed according to the client's
// policy, which by default allows up to ten.
func NewProber(client *http.Client) *Prober {
	return &Prober{client: client}
}

// Probe issues a HEAD request carrying headers and fails on a status of 400 or above.
func (p *Prober) Probe(ctx context.Context, url string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("head %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &StatusError{Code: resp.StatusCode}
	}

	return nil
}

// Probe checks url with a client built from the current configuration.
func Probe(ctx context.Context, url string, headers map[string]string) error {
	return NewProber(ClientFromConfig()).Probe(ctx, url, headers)
}
