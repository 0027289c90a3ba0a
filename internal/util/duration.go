package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinSession is the shortest timed session the jiggler accepts.
const MinSession = time.Second

// ErrSessionTooShort is returned for timed sessions under MinSession.
var ErrSessionTooShort = errors.New("session must last at least 1s")

// ParseDuration accepts either a bare number of minutes or a Go duration string.
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if minutes, err := strconv.Atoi(input); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s\n\nValid formats:\n"+
			"• Minutes: 150\n"+
			"• Duration: 2h30m, 45m, 1h30m45s", input)
	}
	return duration, nil
}

// SessionFor parses the length of a timed session. Seconds are kept.
func SessionFor(input string) (time.Duration, error) {
	d, err := ParseDuration(input)
	if err != nil {
		return 0, err
	}
	if d < MinSession {
		return 0, fmt.Errorf("duration %q: %w", input, ErrSessionTooShort)
	}
	return d, nil
}
