package util

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration renders d as HH:MM:SS. Only the hour-of-day, minute and
// second components are shown, so whole days wrap around: 26h is
// "02:00:00". Negative durations are formatted by magnitude.
func FormatDuration(d time.Duration) string {
	switch {
	case d == math.MinInt64:
		// -MinInt64 overflows; MaxInt64 is 1ns shorter, below the shown precision.
		d = math.MaxInt64
	case d < 0:
		d = -d
	}
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
