package tui

import (
	"fmt"
	"time"

	"github.com/hlsplay/hlsplay/history"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/style"
	"github.com/hlsplay/hlsplay/util"
	"github.com/spf13/viper"
)

// historyItem is a list row for one history entry. index points into the store so filtered rows
// can still be deleted.
type historyItem struct {
	index int
	entry history.Entry
}

func (h *historyItem) Title() string {
	return h.entry.Title()
}

func (h *historyItem) Description() string {
	var description string

	if h.entry.LastPosition > 0 {
		description = style.Fg(style.WarningColor)(util.FormatTime(h.entry.LastPosition))
	} else {
		description = style.Faint("not started")
	}

	if t, ok := h.entry.Time(); ok {
		description = fmt.Sprintf("%s • %s", description, style.Faint(relative(time.Since(t))))
	}

	if viper.GetBool(key.TUIShowURLs) && h.entry.Name != h.entry.URL {
		description = fmt.Sprintf("%s • %s", description, style.Faint(h.entry.URL))
	}

	return description
}

func (h *historyItem) FilterValue() string {
	return h.entry.Name + " " + h.entry.URL
}

func relative(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return util.Quantify(int(d.Minutes()), "minute", "minutes") + " ago"
	case d < 24*time.Hour:
		return util.Quantify(int(d.Hours()), "hour", "hours") + " ago"
	default:
		return util.Quantify(int(d.Hours()/24), "day", "days") + " ago"
	}
}
