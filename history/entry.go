package history

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the ISO-8601 form entries are stamped with (microsecond precision, no zone).
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Entry is one remembered stream.
type Entry struct {
	// URL is the stream address and the entry's unique key.
	URL string `json:"url" jsonschema:"required,minLength=1"`
	// Name is the display label. It defaults to URL.
	Name string `json:"name"`
	// Timestamp is the last time the entry was created or its progress updated.
	Timestamp string `json:"timestamp"`
	// LastPosition is the resume offset in seconds.
	LastPosition float64 `json:"last_position" jsonschema:"minimum=0"`
}

// Title returns the label to display for the entry.
func (e Entry) Title() string {
	if e.Name != "" {
		return e.Name
	}
	return e.URL
}

// Time parses Timestamp. Entries written by other tools may carry a zone offset, which is
// accepted too.
func (e Entry) Time() (time.Time, bool) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, e.Timestamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UnmarshalJSON tolerates missing and unknown fields: an absent name becomes the URL and an
// absent or negative position becomes zero.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type raw Entry
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	*e = Entry(r)
	if e.Name == "" {
		e.Name = e.URL
	}
	if e.LastPosition < 0 {
		e.LastPosition = 0
	}
	return nil
}
