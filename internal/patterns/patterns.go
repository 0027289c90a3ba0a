// Package patterns resolves the timing and displacement of a single jiggle cycle.
package patterns

import (
	"math"
	"math/rand"
	"time"

	"github.com/stigoleg/jiggler/internal/config"
)

const (
	// MinInterval bounds timer overhead regardless of the configured seconds.
	MinInterval = time.Second

	// Safe-mode movement magnitude factors.
	MoveFactorMin = 0.7
	MoveFactorMax = 1.3

	// MaxDistance caps a randomized displacement.
	MaxDistance = config.MaxMovePixels
)

// Axis selects the direction of a fixed-mode displacement.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Next returns the other axis.
func (a Axis) Next() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Vector is a pointer displacement in pixels.
type Vector struct {
	DX int
	DY int
}

// Cycle is the resolved behavior of one jiggle.
type Cycle struct {
	Interval time.Duration
	Vector   Vector
}

// Resolve computes the wait before the next cycle and the displacement to
// perform. axis is the fixed-mode alternation state, owned by the caller.
func Resolve(cfg config.Configuration, axis Axis, rnd *rand.Rand) Cycle {
	return Cycle{
		Interval: Interval(cfg, rnd),
		Vector:   Movement(cfg, axis, rnd),
	}
}

// BaseInterval is the configured interval with the minimum applied.
func BaseInterval(cfg config.Configuration) time.Duration {
	base := time.Duration(cfg.IntervalSeconds) * time.Second
	if base < MinInterval {
		return MinInterval
	}
	return base
}

// Interval returns the wait for one cycle. In safe mode with a non-zero
// jitter the base interval is scaled by a uniform factor in
// [1-p/100, 1+p/100].
func Interval(cfg config.Configuration, rnd *rand.Rand) time.Duration {
	base := BaseInterval(cfg)
	if !cfg.SafeMode || cfg.JitterPercent <= 0 {
		return base
	}

	spread := float64(cfg.JitterPercent) / 100
	factor := 1 - spread + rnd.Float64()*2*spread

	ms := math.Round(float64(base.Milliseconds()) * factor)
	d := time.Duration(ms) * time.Millisecond
	if d < MinInterval {
		return MinInterval
	}
	return d
}

// Movement returns the displacement for one cycle. Fixed mode moves exactly
// MovePixels along axis; safe mode picks a random axis, sign and magnitude.
func Movement(cfg config.Configuration, axis Axis, rnd *rand.Rand) Vector {
	if !cfg.SafeMode {
		if axis == AxisY {
			return Vector{DY: cfg.MovePixels}
		}
		return Vector{DX: cfg.MovePixels}
	}

	randomAxis := Axis(rnd.Intn(2))
	sign := 1
	if rnd.Intn(2) == 0 {
		sign = -1
	}
	factor := MoveFactorMin + rnd.Float64()*(MoveFactorMax-MoveFactorMin)
	distance := int(math.Round(float64(cfg.MovePixels) * factor))
	if distance < 1 {
		distance = 1
	}
	if distance > MaxDistance {
		distance = MaxDistance
	}

	if randomAxis == AxisY {
		return Vector{DY: sign * distance}
	}
	return Vector{DX: sign * distance}
}
