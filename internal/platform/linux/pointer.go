//go:build linux

package linux

import (
	"fmt"
	"strconv"
	"strings"
)

// XdotoolPointer reads and writes the absolute pointer position through xdotool.
type XdotoolPointer struct{}

// NewXdotoolPointer returns a pointer backend, or an error when xdotool
// cannot work in this session.
func NewXdotoolPointer() (*XdotoolPointer, error) {
	if DetectDisplayServer() == DisplayServerWayland {
		return nil, fmt.Errorf("xdotool: %w", ErrWayland)
	}
	if !hasCommand("xdotool") {
		return nil, fmt.Errorf("xdotool not found")
	}
	return &XdotoolPointer{}, nil
}

// Position returns the current pointer coordinates.
func (p *XdotoolPointer) Position() (int, int, error) {
	out, err := runVerbose("xdotool", "getmouselocation", "--shell")
	if err != nil {
		return 0, 0, fmt.Errorf("xdotool getmouselocation: %w (output: %q)", err, out)
	}
	return parseMouseLocation(out)
}

// MoveTo places the pointer at x, y.
func (p *XdotoolPointer) MoveTo(x, y int) error {
	if out, err := runVerbose("xdotool", "mousemove", "--", strconv.Itoa(x), strconv.Itoa(y)); err != nil {
		return fmt.Errorf("xdotool mousemove: %w (output: %q)", err, out)
	}
	return nil
}

// parseMouseLocation reads the X= and Y= lines of `getmouselocation --shell`.
func parseMouseLocation(out string) (int, int, error) {
	var x, y int
	var sawX, sawY bool
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		switch key {
		case "X":
			if err != nil {
				return 0, 0, fmt.Errorf("parse X %q: %w", value, err)
			}
			x, sawX = n, true
		case "Y":
			if err != nil {
				return 0, 0, fmt.Errorf("parse Y %q: %w", value, err)
			}
			y, sawY = n, true
		}
	}
	if !sawX || !sawY {
		return 0, 0, fmt.Errorf("pointer location missing in %q", out)
	}
	return x, y, nil
}
