package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeSendsHeaders(t *testing.T) {
	var got http.Header
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		method = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewProber(srv.Client()).Probe(context.Background(), srv.URL+"/live.m3u8", map[string]string{
		"Referer":    "https://example.com/",
		"User-Agent": "hlsplay-test",
		"Origin":     "",
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodHead, method)
	assert.Equal(t, "https://example.com/", got.Get("Referer"))
	assert.Equal(t, "hlsplay-test", got.Get("User-Agent"))
	assert.Empty(t, got.Get("Origin"))
}

func TestProbeStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   int
	}{
		{"ok", http.StatusOK, 0},
		{"no content", http.StatusNoContent, 0},
		{"forbidden", http.StatusForbidden, http.StatusForbidden},
		{"not found", http.StatusNotFound, http.StatusNotFound},
		{"server error", http.StatusBadGateway, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := NewProber(srv.Client()).Probe(context.Background(), srv.URL, nil)
			if tc.want == 0 {
				assert.NoError(t, err)
				return
			}

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tc.want, statusErr.Code)
			assert.Equal(t, fmt.Sprintf("HTTP %d", tc.want), statusErr.Error())
		})
	}
}

func TestProbeFollowsRedirects(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer final.Close()

	redirect := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer redirect.Close()

	err := NewProber(http.DefaultClient).Probe(context.Background(), redirect.URL, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestProbeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	err := NewProber(NewClient(50*time.Millisecond, false)).Probe(context.Background(), srv.URL, nil)

	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestProbeInvalidURL(t *testing.T) {
	err := NewProber(http.DefaultClient).Probe(context.Background(), "://nope", nil)
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	plain := NewClient(0, false)
	assert.Equal(t, DefaultTimeout, plain.Timeout)
	assert.Same(t, Client.Transport, plain.Transport)

	fingerprinted := NewClient(time.Second, true)
	assert.IsType(t, &FingerprintTransport{}, fingerprinted.Transport)
}

func TestFingerprintTransportPlainHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewFingerprintTransport(nil), Timeout: time.Second}
	err := NewProber(client).Probe(context.Background(), srv.URL, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTeapot, statusErr.Code)
}
