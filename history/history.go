// Package history persists a bounded, most-recently-used list of opened streams together with
// their resume positions.
//
// The list lives in a single human-formatted JSON file. I/O failures never reach the caller:
// they are logged and the in-memory list stays authoritative, so a read-only disk degrades to a
// session-only history instead of breaking playback.
package history

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// MaxEntries bounds the list; inserting beyond it evicts the oldest entries.
const MaxEntries = 50

// Store is not safe for concurrent use. The player drives it from a single goroutine.
type Store struct {
	path    string
	entries []Entry
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for timestamping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open returns a store backed by path and loads its current content.
func Open(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Load()
	return s
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load re-reads the backing file and returns its entries. A missing, unreadable or corrupt file
// yields an empty list.
func (s *Store) Load() []Entry {
	s.entries = read(s.path)
	return s.Entries()
}

// Entries returns a copy of the list, most recent first.
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Get looks an entry up by exact URL.
func (s *Store) Get(url string) mo.Option[Entry] {
	entry, ok := lo.Find(s.entries, func(e Entry) bool {
		return e.URL == url
	})
	if !ok {
		return mo.None[Entry]()
	}
	return mo.Some(entry)
}

// Upsert records url as the most recent entry. An existing entry keeps its position and is moved
// to the front; a new one starts at zero. An empty name falls back to the URL.
func (s *Store) Upsert(url, name string) {
	if name == "" {
		name = url
	}

	var position float64
	if existing, ok := s.Get(url).Get(); ok {
		position = existing.LastPosition
	}

	rest := lo.Reject(s.entries, func(e Entry, _ int) bool {
		return e.URL == url
	})

	entry := Entry{
		URL:          url,
		Name:         name,
		Timestamp:    s.stamp(),
		LastPosition: position,
	}

	s.entries = truncate(append([]Entry{entry}, rest...))
	s.persist()
}

// UpdateProgress stores position as the resume offset of url. Unknown URLs are ignored.
func (s *Store) UpdateProgress(url string, position float64) {
	_, index, ok := lo.FindIndexOf(s.entries, func(e Entry) bool {
		return e.URL == url
	})
	if !ok {
		return
	}

	s.entries[index].LastPosition = max(position, 0)
	s.entries[index].Timestamp = s.stamp()
	s.persist()
}

// DeleteAt removes the entry at index. Out of range indices are ignored.
func (s *Store) DeleteAt(index int) {
	if index < 0 || index >= len(s.entries) {
		return
	}

	s.entries = append(s.entries[:index:index], s.entries[index+1:]...)
	s.persist()
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.entries = nil
	s.persist()
}

// Write replaces the whole list, truncated to MaxEntries.
func (s *Store) Write(entries []Entry) {
	s.entries = truncate(append([]Entry(nil), entries...))
	s.persist()
}

func (s *Store) stamp() string {
	return s.now().Format(TimestampLayout)
}

func (s *Store) persist() {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Errorf("history: encode: %v", err)
		return
	}

	if err := filesystem.WriteFileAtomic(s.path, data, 0o600); err != nil {
		log.WithFields(log.Fields{"path": s.path}).Errorf("history: save: %v", err)
	}
}

func read(path string) []Entry {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithFields(log.Fields{"path": path}).Warnf("history: read: %v", err)
		}
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.WithFields(log.Fields{"path": path}).Warnf("history: decode: %v", err)
		return nil
	}

	entries = lo.Filter(entries, func(e Entry, _ int) bool {
		return e.URL != ""
	})
	entries = lo.UniqBy(entries, func(e Entry) string {
		return e.URL
	})

	return truncate(entries)
}

func truncate(entries []Entry) []Entry {
	if len(entries) > MaxEntries {
		return entries[:MaxEntries]
	}
	return entries
}
