// Package config holds the jiggler settings, their persistence and the
// command line surface.
package config

import "fmt"

// Bounds for the clamped configuration fields.
const (
	MinIntervalSeconds      = 1
	MaxIntervalSeconds      = 3600
	MinMovePixels           = 1
	MaxMovePixels           = 200
	MinIdleThresholdSeconds = 1
	MaxIdleThresholdSeconds = 3600
	MinJitterPercent        = 0
	MaxJitterPercent        = 80
)

// Configuration is the user-facing jiggle configuration.
// Values handed to the engine are expected to be clamped already.
type Configuration struct {
	IntervalSeconds      int
	MovePixels           int
	StartOnLaunch        bool
	IdleAware            bool
	IdleThresholdSeconds int
	SafeMode             bool
	JitterPercent        int

	// IsFirstRun is true until the configuration has been saved once.
	IsFirstRun bool
}

// Defaults returns the configuration used when nothing has been persisted.
func Defaults() Configuration {
	return Configuration{
		IntervalSeconds:      30,
		MovePixels:           2,
		StartOnLaunch:        true,
		IdleAware:            true,
		IdleThresholdSeconds: 15,
		SafeMode:             false,
		JitterPercent:        15,
		IsFirstRun:           true,
	}
}

// Clamp returns a copy with every bounded field forced into its range.
func (c Configuration) Clamp() Configuration {
	c.IntervalSeconds = clamp(c.IntervalSeconds, MinIntervalSeconds, MaxIntervalSeconds)
	c.MovePixels = clamp(c.MovePixels, MinMovePixels, MaxMovePixels)
	c.IdleThresholdSeconds = clamp(c.IdleThresholdSeconds, MinIdleThresholdSeconds, MaxIdleThresholdSeconds)
	c.JitterPercent = clamp(c.JitterPercent, MinJitterPercent, MaxJitterPercent)
	return c
}

// Summary is the one-line description shown in notifications.
func (c Configuration) Summary() string {
	return fmt.Sprintf("Every %ds, move %dpx (drift=0).", c.IntervalSeconds, c.MovePixels)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
