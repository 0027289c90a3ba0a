//go:build linux

package linux

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrWayland is returned by the X11-only helpers under a Wayland session.
var ErrWayland = errors.New("not supported on Wayland (only X11)")

// GetIdleTime returns the system idle time on Linux using xprintidle.
// Note: xprintidle only works on X11, not Wayland.
func GetIdleTime() (time.Duration, error) {
	if DetectDisplayServer() == DisplayServerWayland {
		return 0, fmt.Errorf("xprintidle: %w", ErrWayland)
	}
	if !hasCommand("xprintidle") {
		return 0, fmt.Errorf("xprintidle not found")
	}
	out, err := runVerbose("xprintidle")
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(out)
}

func parseIdleMillis(out string) (time.Duration, error) {
	millis, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse xprintidle output %q: %w", out, err)
	}
	if millis < 0 {
		millis = 0
	}
	return time.Duration(millis) * time.Millisecond, nil
}
