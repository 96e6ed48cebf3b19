package history

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is a search hit. Index points into Entries so the hit can be deleted with DeleteAt.
type Match struct {
	Index int
	Entry Entry
}

// Search returns the entries whose URL or name fuzzily matches query, in store order.
// An empty query matches everything.
func (s *Store) Search(query string) []Match {
	var matches []Match

	for i, entry := range s.entries {
		if query == "" ||
			fuzzy.MatchNormalizedFold(query, entry.Name) ||
			fuzzy.MatchNormalizedFold(query, entry.URL) {
			matches = append(matches, Match{Index: i, Entry: entry})
		}
	}

	return matches
}
