// Package referer remembers the Referer headers typed into the player and ranks them by use, so
// the URL form can suggest them again.
package referer

import (
	"path/filepath"
	"strings"

	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank    int    `json:"rank"`
	Referer string `json:"referer"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       filepath.Join(where.Cache(), "referers.json"),
		FileSystem: &filesystem.GacheFs{},
	},
)

func load() map[string]*record {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*record)
	}
	return cached
}

// Remember adds one use of referer. Blank values are ignored.
func Remember(referer string) error {
	referer = normalize(referer)
	if referer == "" {
		return nil
	}

	cached := load()
	if r, ok := cached[referer]; ok {
		r.Rank++
	} else {
		cached[referer] = &record{Rank: 1, Referer: referer}
	}

	return cacher.Set(cached)
}

// Suggest returns the most used referer fuzzily matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns the remembered referers fuzzily matching q, most used first. An empty q
// matches everything.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.TUIRefererSuggestions) {
		return []string{}
	}

	q = normalize(q)
	records := lo.Filter(lo.Values(load()), func(r *record, _ int) bool {
		return fuzzy.MatchFold(q, r.Referer)
	})

	slices.SortFunc(records, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Referer, b.Referer)
	})

	return lo.Map(records, func(r *record, _ int) string {
		return r.Referer
	})
}

func normalize(referer string) string {
	return strings.TrimSpace(referer)
}
