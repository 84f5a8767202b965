// Package timefmt formats clock readings for the pedal display.
package timefmt

import (
	"strings"
	"time"
)

// Clock formats t as a 12-hour time without a leading zero, e.g. "9:05 pm"
func Clock(t time.Time) string {
	return strings.ToLower(t.Format("3:04 PM"))
}

// ClockSeconds formats t with seconds, e.g. "9:05:30 pm"
func ClockSeconds(t time.Time) string {
	return strings.ToLower(t.Format("3:04:05 PM"))
}

// SameMinute reports whether a and b fall in the same wall-clock minute
func SameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}

// Offset formats a clock correction for status lines, e.g. "+1.25s"
func Offset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return sign + d.Round(10*time.Millisecond).String()
}
