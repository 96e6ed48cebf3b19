package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hlsplay/hlsplay/log"
	"github.com/samber/lo"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// Options configure the mpv process.
type Options struct {
	// Binary is the mpv executable name or path.
	Binary string
	// WindowID embeds the video output into an existing native window when set.
	WindowID string
	// Volume is the initial volume, 0-100.
	Volume int
	// CacheMaxBytes and CacheMaxBackBytes size the demuxer cache in MiB. Zero keeps mpv's default.
	CacheMaxBytes     int
	CacheMaxBackBytes int
	// SocketDir holds the IPC socket. Defaults to the system temp directory.
	SocketDir string
}

// MPV implements Engine on top of an mpv process in idle mode.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex // serializes IPC round trips

	listener  *EventListener
	closeOnce sync.Once
}

var _ Engine = (*MPV)(nil)

// StartMPV launches mpv idle with an IPC server and waits until the socket accepts connections.
func StartMPV(opts Options) (*MPV, error) {
	binary := lo.Ternary(opts.Binary == "", "mpv", opts.Binary)
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", binary, err)
	}

	socketPath, err := newSocketPath(lo.Ternary(opts.SocketDir == "", os.TempDir(), opts.SocketDir))
	if err != nil {
		return nil, err
	}

	m := &MPV{
		socketPath: socketPath,
		exited:     make(chan struct{}),
	}

	m.cmd = exec.Command(path, buildArgs(socketPath, opts)...)

	// Detach from parent process group so terminal signals don't reach mpv directly.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	// reap the process to prevent zombies
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		_ = os.Remove(socketPath)
		return nil, fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.WithFields(log.Fields{"socket": socketPath, "pid": m.cmd.Process.Pid}).Info("mpv started")
	return m, nil
}

func newSocketPath(dir string) (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("hlsplay-%x.sock", randomBytes)), nil
}

func buildArgs(socketPath string, opts Options) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--keep-open=yes",
		"--force-window=yes",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--volume=%d", min(max(opts.Volume, 0), 100)),
	}

	if opts.WindowID != "" {
		args = append(args, fmt.Sprintf("--wid=%s", opts.WindowID))
	}
	if opts.CacheMaxBytes > 0 {
		args = append(args, fmt.Sprintf("--demuxer-max-bytes=%dMiB", opts.CacheMaxBytes))
	}
	if opts.CacheMaxBackBytes > 0 {
		args = append(args, fmt.Sprintf("--demuxer-max-back-bytes=%dMiB", opts.CacheMaxBackBytes))
	}

	return args
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) SetHeaders(headers map[string]string) error {
	return m.set("http-header-fields", formatHeaders(headers))
}

func (m *MPV) SetUserAgent(userAgent string) error {
	return m.set("user-agent", userAgent)
}

func (m *MPV) LoadFile(rawURL string) error {
	target, err := SanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	_, err = m.sendCommand("loadfile", target, "replace")
	return err
}

func (m *MPV) Stop() error {
	_, err := m.sendCommand("stop")
	return err
}

func (m *MPV) SetPause(paused bool) error {
	return m.set("pause", paused)
}

func (m *MPV) Paused() (bool, error) {
	return decode[bool](m.get("pause"))
}

func (m *MPV) Seek(value float64, mode SeekMode) error {
	_, err := m.sendCommand("seek", value, mode.String())
	return err
}

func (m *MPV) SetVolume(volume int) error {
	return m.set("volume", volume)
}

func (m *MPV) TimePos() (float64, error) {
	return decode[float64](m.get("time-pos"))
}

func (m *MPV) Duration() (float64, error) {
	return decode[float64](m.get("duration"))
}

func (m *MPV) DemuxerCacheTime() (float64, error) {
	return decode[float64](m.get("demuxer-cache-time"))
}

func (m *MPV) DemuxerCacheState() (CacheState, error) {
	return decode[CacheState](m.get("demuxer-cache-state"))
}

func (m *MPV) TrackList() ([]Track, error) {
	return decode[[]Track](m.get("track-list"))
}

func (m *MPV) SetVideoTrack(id int) error {
	return m.set("vid", id)
}

// SetStreamRecord dumps the raw input stream to path. An empty path stops recording.
func (m *MPV) SetStreamRecord(path string) error {
	return m.set("stream-record", path)
}

func (m *MPV) Seekable() (bool, error) {
	return decode[bool](m.get("seekable"))
}

// Observe starts the event listener. Only the first call registers a callback.
func (m *MPV) Observe(callback func(Event)) error {
	m.mu.Lock()
	if m.listener != nil {
		m.mu.Unlock()
		return nil
	}
	m.listener = NewEventListener(m.socketPath, callback)
	listener := m.listener
	m.mu.Unlock()

	if err := listener.Start(); err != nil {
		m.mu.Lock()
		m.listener = nil
		m.mu.Unlock()
		return err
	}
	return nil
}

// Terminate quits mpv, killing it if it does not exit in time, and removes the socket.
func (m *MPV) Terminate() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		listener := m.listener
		m.mu.Unlock()

		if listener != nil {
			listener.Stop()
		}

		_, _ = m.sendCommand("quit")

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			log.Warn("mpv did not quit in time, killing it")
			_ = killProcess(m.cmd)
		}

		_ = os.Remove(m.socketPath)
	})

	return nil
}

func (m *MPV) get(property string) ([]byte, error) {
	return m.sendCommand("get_property", property)
}

func (m *MPV) set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

// formatHeaders renders headers as mpv's comma separated "Key: Value" list, sorted by key.
// Commas inside values are percent-encoded so they don't split the list.
func formatHeaders(headers map[string]string) string {
	keys := lo.Keys(headers)
	slices.Sort(keys)

	fields := lo.FilterMap(keys, func(k string, _ int) (string, bool) {
		v := strings.TrimSpace(headers[k])
		if v == "" {
			return "", false
		}
		return fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")), true
	})

	return strings.Join(fields, ",")
}

// SanitizeMediaTarget validates that a URL or path is safe to hand to mpv.
func SanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in URL")
	}

	// mpv would parse it as an option
	if strings.HasPrefix(l, "-") {
		return "", errors.New("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
