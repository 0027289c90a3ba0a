package util

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}

// ParseClock resolves a time of day to that wall-clock time on now's date.
// Supported formats:
// - 24-hour: "HH:MM" (e.g., "23:30", "09:45")
// - 12-hour: "HH:MM[AM|PM]" (e.g., "11:30PM", "09:45AM")
func ParseClock(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToUpper(input))

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time format: %s\n\nValid formats:\n"+
		"• 24-hour format: HH:MM (e.g., '23:30', '09:45')\n"+
		"• 12-hour format: HH:MM[AM|PM] (e.g., '11:30PM', '9:45 AM')", input)
}

// SessionUntil returns the next moment after now at the given time of day,
// rolling over to tomorrow when today's has passed. A target less than
// MinSession away is rejected.
func SessionUntil(input string, now time.Time) (time.Time, error) {
	target, err := ParseClock(input, now)
	if err != nil {
		return time.Time{}, err
	}
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	if target.Sub(now) < MinSession {
		return time.Time{}, fmt.Errorf("clock %q: %w", input, ErrSessionTooShort)
	}
	return target, nil
}
