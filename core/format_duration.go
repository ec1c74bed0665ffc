package core

import (
	"fmt"
	"time"
)

// FormatDuration renders a render or run duration for humans, using at most
// two units:
//
//   - FormatDuration(0) returns "0ms"
//   - FormatDuration(250 * time.Millisecond) returns "250ms"
//   - FormatDuration(3420 * time.Millisecond) returns "3.42s"
//   - FormatDuration(2*time.Minute + 30*time.Second) returns "2m 30s"
//   - FormatDuration(time.Hour + 5*time.Minute) returns "1h 5m"
//
// Negative durations get a leading minus sign.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}

	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d/time.Millisecond)
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", d/time.Minute, (d%time.Minute)/time.Second)
	default:
		return fmt.Sprintf("%dh %dm", d/time.Hour, (d%time.Hour)/time.Minute)
	}
}
