package platform

import (
	"fmt"
	"time"

	"github.com/stigoleg/jiggler/internal/patterns"
)

// VisibilityDelay is how long the pointer stays offset before it is restored.
const VisibilityDelay = 40 * time.Millisecond

// Actuator performs zero-drift pointer displacements.
type Actuator struct {
	pointer Pointer
	delay   time.Duration
	sleep   func(time.Duration)
}

// NewActuator creates an actuator holding each offset for delay.
func NewActuator(pointer Pointer, delay time.Duration) *Actuator {
	return &Actuator{
		pointer: pointer,
		delay:   delay,
		sleep:   time.Sleep,
	}
}

// Perform moves the pointer by v, waits, then writes the original position
// back. If the offset write fails nothing needs restoring.
func (a *Actuator) Perform(v patterns.Vector) error {
	x, y, err := a.pointer.Position()
	if err != nil {
		return fmt.Errorf("read pointer position: %w", err)
	}

	if err := a.pointer.MoveTo(x+v.DX, y+v.DY); err != nil {
		return fmt.Errorf("offset pointer: %w", err)
	}

	if a.delay > 0 {
		a.sleep(a.delay)
	}

	if err := a.pointer.MoveTo(x, y); err != nil {
		return fmt.Errorf("restore pointer: %w", err)
	}
	return nil
}
