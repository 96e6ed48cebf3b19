package player

import (
	"fmt"

	"github.com/samber/lo"
)

// Track is one entry of the engine's track list.
type Track struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Lang     string `json:"lang"`
	Codec    string `json:"codec"`
	DemuxW   int    `json:"demux-w"`
	DemuxH   int    `json:"demux-h"`
	Selected bool   `json:"selected"`
}

// Label renders the track the way the quality selector shows it, e.g. "2: 720p (h264)".
func (t Track) Label() string {
	return fmt.Sprintf("%d: %dp (%s)", t.ID, t.DemuxH, t.Codec)
}

// VideoOnly keeps the video tracks of a track list.
func VideoOnly(tracks []Track) []Track {
	return lo.Filter(tracks, func(t Track, _ int) bool {
		return t.Type == "video"
	})
}
