package engine

import (
	"fmt"
	"time"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/patterns"
)

type cycle struct {
	cfg     config.Configuration
	vector  patterns.Vector
	trigger string
}

type cycleResult struct {
	trigger  string
	actuated bool
	err      error
}

// dispatch hands a cycle to a worker if the guard is free. Runs on the loop.
func (e *Engine) dispatch(v patterns.Vector, trigger string) bool {
	if !e.guard.TryAcquire() {
		if trigger == TriggerScheduled {
			e.logger.Warnf("engine: previous cycle overran the interval, skipping")
		} else {
			e.logger.Debugf("engine: cycle in flight, dropping %s cycle", trigger)
		}
		e.metrics.observeCycle(trigger, ResultBusy)
		return false
	}

	e.workers.Add(1)
	go e.runCycle(cycle{cfg: e.cfg, vector: v, trigger: trigger})
	return true
}

// runCycle is the worker body. The guard is always released, including
// when the actuator panics.
func (e *Engine) runCycle(c cycle) {
	defer e.workers.Done()

	res := cycleResult{trigger: c.trigger}
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("panic: %v", r)
		}
		e.finish(res)
	}()

	if c.trigger == TriggerScheduled && c.cfg.IdleAware && e.idle != nil {
		threshold := time.Duration(c.cfg.IdleThresholdSeconds) * time.Second
		if idle := e.idle.IdleDuration(); idle < threshold {
			e.logger.Debugf("engine: user active (idle %s < %s), skipping cycle", idle.Round(time.Millisecond), threshold)
			e.metrics.observeCycle(c.trigger, ResultUserActive)
			return
		}
	}

	res.actuated = true
	started := time.Now()
	res.err = e.actuator.Perform(c.vector)
	e.metrics.observeDuration(time.Since(started))
}

// finish reports a completed cycle to the loop.
func (e *Engine) finish(res cycleResult) {
	if res.err != nil {
		e.logger.Errorf("engine: %s cycle failed: %v", res.trigger, res.err)
		e.metrics.observeCycle(res.trigger, ResultFailed)
		e.notify(fmt.Sprintf("Jiggle failed: %v", res.err))
	} else if res.actuated {
		e.metrics.observeCycle(res.trigger, ResultMoved)
	}

	if !e.post(func() { e.complete(res) }) {
		e.guard.Release()
	}
}

// complete runs on the loop once a worker is done.
func (e *Engine) complete(res cycleResult) {
	if res.actuated {
		e.axis = e.axis.Next()
	}
	e.guard.Release()
}
