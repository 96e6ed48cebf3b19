package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// ipcMessage is anything mpv writes back: either a reply (carrying request_id) or an
// asynchronous event (carrying event).
type ipcMessage struct {
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	RequestID int64           `json:"request_id"`
	Event     string          `json:"event"`

	// property-change and end-file payloads
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// mpvError is a command rejected by mpv itself, as opposed to a transport failure.
type mpvError struct {
	message string
}

func (e *mpvError) Error() string {
	return "mpv error: " + e.message
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
	maxLineSize  = 1 << 20
)

var requestCounter atomic.Int64

// sendCommand sends a JSON-IPC command to mpv and returns the raw reply data.
// Transport failures are retried; mpv-level errors are not.
func (m *MPV) sendCommand(command ...any) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}

		var rejected *mpvError
		if errors.Is(err, ErrNotReady) || errors.As(err, &rejected) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// doSendCommand performs a single IPC round trip on a fresh connection.
func doSendCommand(socketPath string, command []any) (json.RawMessage, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	id := requestCounter.Add(1)
	if err := writeCommand(conn, id, command); err != nil {
		return nil, err
	}

	reader := bufio.NewReaderSize(conn, 4096)
	for {
		msg, err := readMessage(reader)
		if err != nil {
			return nil, err
		}

		// mpv broadcasts events to every client; skip them until our reply arrives
		if msg.Event != "" || msg.RequestID != id {
			continue
		}

		return replyData(msg)
	}
}

func writeCommand(conn net.Conn, id int64, command []any) error {
	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: id})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func readMessage(reader *bufio.Reader) (ipcMessage, error) {
	var msg ipcMessage

	line, err := readLine(reader)
	if err != nil {
		return msg, fmt.Errorf("read: %w", err)
	}

	if err := json.Unmarshal(line, &msg); err != nil {
		return msg, fmt.Errorf("unmarshal: %w", err)
	}
	return msg, nil
}

// readLine reads up to the next newline. Replies longer than the reader's buffer (track lists of
// multi-variant streams) arrive in several chunks; each is copied out before the next read reuses
// the buffer. Lines over maxLineSize are rejected as soon as they cross the limit.
func readLine(reader *bufio.Reader) ([]byte, error) {
	var line []byte
	for {
		chunk, err := reader.ReadSlice('\n')
		if len(line)+len(chunk) > maxLineSize {
			return nil, fmt.Errorf("reply exceeds %d bytes", maxLineSize)
		}

		switch {
		case err == nil:
			return append(line, chunk...), nil
		case errors.Is(err, bufio.ErrBufferFull):
			line = append(line, chunk...)
		default:
			return nil, err
		}
	}
}

func replyData(msg ipcMessage) (json.RawMessage, error) {
	switch msg.Error {
	case "", "success":
	case "property unavailable":
		return nil, ErrNotReady
	default:
		return nil, &mpvError{message: msg.Error}
	}

	if len(msg.Data) == 0 || string(msg.Data) == "null" {
		return nil, nil
	}
	return msg.Data, nil
}

// decode unmarshals a property reply into T. A null reply means the engine has no value yet.
func decode[T any](data json.RawMessage, err error) (T, error) {
	var value T
	if err != nil {
		return value, err
	}
	if data == nil {
		return value, ErrNotReady
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("decode %T: %w", value, err)
	}
	return value, nil
}
