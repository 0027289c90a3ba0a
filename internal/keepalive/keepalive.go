// Package keepalive runs jiggle sessions, indefinite or timed, on top of the
// engine, and tears the process down in order.
package keepalive

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stigoleg/jiggler/internal/engine"
)

// Engine is the part of the jiggle engine a session drives.
type Engine interface {
	Start() error
	Stop() error
	IsRunning() bool
}

// Keeper manages the current jiggle session.
type Keeper struct {
	engine Engine
	clock  engine.Clock
	logger *zap.SugaredLogger

	mu      sync.Mutex
	timer   engine.Timer
	session uint64
	endTime time.Time
}

// NewKeeper creates a keeper for e. A nil clock means the system clock.
func NewKeeper(e Engine, clock engine.Clock, logger *zap.SugaredLogger) *Keeper {
	if clock == nil {
		clock = engine.SystemClock
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Keeper{engine: e, clock: clock, logger: logger}
}

// IsRunning returns whether the engine is currently jiggling
func (k *Keeper) IsRunning() bool {
	return k.engine.IsRunning()
}

// StartIndefinite starts jiggling until Stop is called. A pending timed
// stop is cancelled.
func (k *Keeper) StartIndefinite() error {
	k.mu.Lock()
	k.cancelTimerLocked()
	k.mu.Unlock()

	if err := k.engine.Start(); err != nil {
		return err
	}
	k.logger.Infof("keeper: started (indefinite)")
	return nil
}

// StartTimed starts jiggling and stops after d. Calling it while running
// replaces the previous deadline.
func (k *Keeper) StartTimed(d time.Duration) error {
	if err := k.engine.Start(); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.cancelTimerLocked()
	session := k.session
	k.endTime = k.clock.Now().Add(d)
	k.timer = k.clock.AfterFunc(d, func() { k.expire(session) })

	k.logger.Infof("keeper: started (timed=%s)", d)
	return nil
}

func (k *Keeper) expire(session uint64) {
	k.mu.Lock()
	if session != k.session {
		k.mu.Unlock()
		return
	}
	k.timer = nil
	k.endTime = time.Time{}
	k.mu.Unlock()

	k.logger.Infof("keeper: session time elapsed")
	if err := k.engine.Stop(); err != nil {
		k.logger.Warnf("keeper: stop after session end failed: %v", err)
	}
}

// Stop ends the session.
func (k *Keeper) Stop() error {
	k.mu.Lock()
	k.cancelTimerLocked()
	k.mu.Unlock()

	return k.engine.Stop()
}

// Toggle starts an indefinite session when stopped and stops it otherwise.
func (k *Keeper) Toggle() error {
	if k.IsRunning() {
		return k.Stop()
	}
	return k.StartIndefinite()
}

// TimeRemaining returns the remaining duration for timed mode
func (k *Keeper) TimeRemaining() time.Duration {
	k.mu.Lock()
	endTime := k.endTime
	k.mu.Unlock()

	if endTime.IsZero() || !k.engine.IsRunning() {
		return 0
	}

	remaining := endTime.Sub(k.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// EndTime returns when the timed session stops, or the zero time.
func (k *Keeper) EndTime() time.Time {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.endTime
}

func (k *Keeper) cancelTimerLocked() {
	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}
	k.session++
	k.endTime = time.Time{}
}
