package player

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/hlsplay/hlsplay/log"
)

// observedProperties maps observe_property ids to the events they produce.
var observedProperties = []struct {
	id   int
	name string
	kind EventKind
}{
	{1, "core-idle", EventCoreIdle},
	{2, "paused-for-cache", EventPausedForCache},
	{3, "eof-reached", EventEOFReached},
}

// EventListener holds a dedicated IPC connection on which property changes are observed.
// mpv scopes observers to the connection that registered them, so observation and reading
// share the same socket.
type EventListener struct {
	socketPath string
	callback   func(Event)

	mu   sync.Mutex
	conn net.Conn
	done chan struct{}
}

// NewEventListener creates a listener for the given socket.
func NewEventListener(socketPath string, callback func(Event)) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start connects, registers the observers and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for _, prop := range observedProperties {
		id := requestCounter.Add(1)
		if err := writeCommand(conn, id, []any{"observe_property", prop.id, prop.name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", prop.name, err)
		}
	}

	el.conn = conn
	el.done = make(chan struct{})
	go el.readLoop(conn, el.done)

	log.WithFields(log.Fields{"socket": el.socketPath}).Info("mpv event listener started")
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (el *EventListener) Stop() {
	el.mu.Lock()
	conn, done := el.conn, el.done
	el.conn = nil
	el.mu.Unlock()

	if conn == nil {
		return
	}

	_ = conn.Close()
	<-done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	reader := bufio.NewReaderSize(conn, 4096)
	for {
		msg, err := readMessage(reader)
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Debugf("event listener stopped: %v", err)
			}
			return
		}

		if ev, ok := toEvent(msg); ok && el.callback != nil {
			el.callback(ev)
		}
	}
}

// toEvent converts a raw mpv message into an Event. Replies and unrelated events are dropped.
func toEvent(msg ipcMessage) (Event, bool) {
	switch msg.Event {
	case "property-change":
		for _, prop := range observedProperties {
			if prop.name != msg.Name {
				continue
			}

			var active bool
			if len(msg.Data) > 0 {
				// null (nothing loaded) decodes as false
				active, _ = decode[bool](msg.Data, nil)
			}
			return Event{Kind: prop.kind, Active: active}, true
		}
	case "end-file":
		return Event{Kind: EventEndFile, Reason: msg.Reason}, true
	}

	return Event{}, false
}
