package util

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatTime renders seconds as HH:MM:SS. Negative, NaN and infinite inputs render as zero.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	secs := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatSpeed renders a byte rate with binary units and SI suffixes, e.g. "512 KB/s" or
// "1.5 MB/s". Non-positive rates render as an empty string.
func FormatSpeed(bytesPerSecond float64) string {
	if bytesPerSecond <= 0 || math.IsNaN(bytesPerSecond) {
		return ""
	}

	s := humanize.IBytes(uint64(bytesPerSecond))
	return strings.ReplaceAll(s, "iB", "B") + "/s"
}
