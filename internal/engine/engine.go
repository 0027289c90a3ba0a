// Package engine schedules jiggle cycles. All state transitions and timer
// firings are serialized through a single command loop; cycle bodies run on
// worker goroutines so the pointer hold never delays control operations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/patterns"
	"github.com/stigoleg/jiggler/internal/platform"
)

// Engine states.
const (
	StateStopped  = "stopped"
	StateRunning  = "running"
	StateShutdown = "shutdown"
)

const (
	eventStart    = "start"
	eventStop     = "stop"
	eventShutdown = "shutdown"
)

// Notification messages.
const (
	MsgStarted       = "Started."
	MsgStopped       = "Stopped."
	MsgSettingsSaved = "Settings saved."
	MsgSettingsError = "Settings error. Please try again."
)

// ErrShutdown is returned by operations on an engine that has been shut down.
var ErrShutdown = errors.New("engine is shut down")

// Notifier receives one-line status messages. Implementations must not block.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) { f(message) }

// Actuator performs one zero-drift pointer displacement.
type Actuator interface {
	Perform(v patterns.Vector) error
}

// ConfigSaver persists a configuration and returns the stored value.
type ConfigSaver interface {
	Save(cfg config.Configuration) (config.Configuration, error)
}

// Options are the collaborators of an Engine. Only Actuator is required.
type Options struct {
	Actuator Actuator
	Idle     platform.IdleMonitor
	Notifier Notifier
	Saver    ConfigSaver
	Clock    Clock
	Rand     *rand.Rand
	Logger   *zap.SugaredLogger
	Metrics  *Metrics
}

// Status is a snapshot of the engine.
type Status struct {
	Running bool
	Config  config.Configuration
	// Interval is the armed wait; zero when stopped.
	Interval time.Duration
	// NextCycle is when the armed wait expires; zero when stopped.
	NextCycle     time.Time
	CycleInFlight bool
}

// Engine is the jiggle scheduler and its Stopped/Running state machine.
type Engine struct {
	actuator Actuator
	idle     platform.IdleMonitor
	notifier Notifier
	saver    ConfigSaver
	clock    Clock
	logger   *zap.SugaredLogger
	metrics  *Metrics

	cmds    chan func()
	done    chan struct{}
	workers sync.WaitGroup
	guard   TickGuard

	// Owned by the loop goroutine.
	machine   *fsm.FSM
	rnd       *rand.Rand
	cfg       config.Configuration
	axis      patterns.Axis
	timer     Timer
	gen       uint64
	interval  time.Duration
	nextCycle time.Time
}

// New creates a stopped engine using cfg, which must already be clamped.
func New(cfg config.Configuration, opts Options) (*Engine, error) {
	if opts.Actuator == nil {
		return nil, errors.New("engine: actuator is required")
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(string) {})
	}

	e := &Engine{
		actuator: opts.Actuator,
		idle:     opts.Idle,
		notifier: opts.Notifier,
		saver:    opts.Saver,
		clock:    opts.Clock,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		cmds:     make(chan func(), 16),
		done:     make(chan struct{}),
		rnd:      opts.Rand,
		cfg:      cfg,
		axis:     patterns.AxisX,
	}

	e.machine = fsm.NewFSM(
		StateStopped,
		fsm.Events{
			{Name: eventStart, Src: []string{StateStopped}, Dst: StateRunning},
			{Name: eventStop, Src: []string{StateRunning}, Dst: StateStopped},
			{Name: eventShutdown, Src: []string{StateStopped, StateRunning}, Dst: StateShutdown},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				e.logger.Debugf("engine: %s -> %s", ev.Src, ev.Dst)
			},
		},
	)

	go e.loop()
	return e, nil
}

func (e *Engine) loop() {
	defer close(e.done)
	for {
		cmd := <-e.cmds
		cmd()
		if e.machine.Is(StateShutdown) {
			return
		}
	}
}

// do runs fn on the loop and waits for it.
func (e *Engine) do(fn func()) error {
	finished := make(chan struct{})
	select {
	case e.cmds <- func() { fn(); close(finished) }:
	case <-e.done:
		return ErrShutdown
	}

	select {
	case <-finished:
		return nil
	case <-e.done:
		// A shutdown queued ahead of fn ends the loop before fn runs.
		select {
		case <-finished:
			return nil
		default:
			return ErrShutdown
		}
	}
}

// post queues fn on the loop without waiting. It reports false once the
// loop has exited.
func (e *Engine) post(fn func()) bool {
	select {
	case e.cmds <- fn:
		return true
	case <-e.done:
		return false
	}
}

func (e *Engine) notify(message string) {
	e.notifier.Notify(message)
}

// Start arms the scheduler. Starting a running engine does nothing.
func (e *Engine) Start() error {
	var started bool
	var err error
	if doErr := e.do(func() { started, err = e.start() }); doErr != nil {
		return doErr
	}
	if err != nil {
		return err
	}
	if started {
		e.notify(MsgStarted)
	}
	return nil
}

func (e *Engine) start() (bool, error) {
	if e.machine.Is(StateRunning) {
		return false, nil
	}
	if err := e.machine.Event(context.Background(), eventStart); err != nil {
		return false, fmt.Errorf("start: %w", err)
	}
	e.arm(patterns.Interval(e.cfg, e.rnd))
	e.metrics.setRunning(true)
	e.logger.Infof("engine: started, %s", e.cfg.Summary())
	return true, nil
}

// Stop disarms the scheduler. A cycle already in flight completes.
// Stopping a stopped engine does nothing.
func (e *Engine) Stop() error {
	var stopped bool
	var err error
	if doErr := e.do(func() { stopped, err = e.stop() }); doErr != nil {
		return doErr
	}
	if err != nil {
		return err
	}
	if stopped {
		e.notify(MsgStopped)
	}
	return nil
}

func (e *Engine) stop() (bool, error) {
	if !e.machine.Is(StateRunning) {
		return false, nil
	}
	if err := e.machine.Event(context.Background(), eventStop); err != nil {
		return false, fmt.Errorf("stop: %w", err)
	}
	e.disarm()
	e.metrics.setRunning(false)
	e.logger.Infof("engine: stopped")
	return true, nil
}

// Reconfigure replaces the configuration. While running the wait is re-armed
// from the new configuration; an in-flight cycle keeps its own snapshot.
func (e *Engine) Reconfigure(cfg config.Configuration) error {
	return e.do(func() { e.reconfigure(cfg) })
}

func (e *Engine) reconfigure(cfg config.Configuration) {
	if cfg == e.cfg {
		return
	}
	e.cfg = cfg
	e.logger.Infof("engine: reconfigured, %s", cfg.Summary())
	if e.machine.Is(StateRunning) {
		e.arm(patterns.Interval(cfg, e.rnd))
	}
}

// ApplyConfiguration clamps cfg, persists it through the saver and, if that
// succeeds, reconfigures the engine. A failed save leaves the engine untouched.
func (e *Engine) ApplyConfiguration(cfg config.Configuration) error {
	select {
	case <-e.done:
		return ErrShutdown
	default:
	}

	cfg = cfg.Clamp()
	if e.saver != nil {
		saved, err := e.saver.Save(cfg)
		if err != nil {
			e.logger.Errorf("engine: saving settings failed: %v", err)
			e.notify(MsgSettingsError)
			return fmt.Errorf("save settings: %w", err)
		}
		cfg = saved
	}

	if err := e.Reconfigure(cfg); err != nil {
		return err
	}
	e.notify(MsgSettingsSaved)
	return nil
}

// TriggerOnce runs one forced cycle regardless of run state. The idle gate
// does not apply. If a cycle is already in flight the request is dropped.
func (e *Engine) TriggerOnce() error {
	return e.do(func() {
		v := patterns.Movement(e.cfg, e.axis, e.rnd)
		e.dispatch(v, TriggerForced)
	})
}

// IsRunning reports whether the scheduler is armed.
func (e *Engine) IsRunning() bool {
	var running bool
	if err := e.do(func() { running = e.machine.Is(StateRunning) }); err != nil {
		return false
	}
	return running
}

// Config returns the current configuration.
func (e *Engine) Config() config.Configuration {
	var cfg config.Configuration
	if err := e.do(func() { cfg = e.cfg }); err != nil {
		// The loop has exited; nothing writes cfg any more.
		return e.cfg
	}
	return cfg
}

// Status returns a snapshot of the engine.
func (e *Engine) Status() Status {
	var s Status
	err := e.do(func() {
		s = Status{
			Running:       e.machine.Is(StateRunning),
			Config:        e.cfg,
			Interval:      e.interval,
			NextCycle:     e.nextCycle,
			CycleInFlight: e.guard.Held(),
		}
	})
	if err != nil {
		return Status{Config: e.cfg}
	}
	return s
}

// Shutdown stops the engine for good and waits, until ctx is done, for an
// in-flight cycle to restore the pointer. Repeated calls return nil.
func (e *Engine) Shutdown(ctx context.Context) error {
	var wasRunning bool
	var err error
	doErr := e.do(func() {
		wasRunning = e.machine.Is(StateRunning)
		e.disarm()
		e.metrics.setRunning(false)
		if evErr := e.machine.Event(context.Background(), eventShutdown); evErr != nil {
			err = fmt.Errorf("shutdown: %w", evErr)
		}
	})
	if errors.Is(doErr, ErrShutdown) {
		return nil
	}
	if err != nil {
		return err
	}
	if wasRunning {
		e.notify(MsgStopped)
	}

	idle := make(chan struct{})
	go func() {
		e.workers.Wait()
		close(idle)
	}()

	select {
	case <-idle:
		e.logger.Infof("engine: shut down")
		return nil
	case <-ctx.Done():
		e.logger.Warnf("engine: shutdown did not wait for in-flight cycle: %v", ctx.Err())
		return ctx.Err()
	}
}

// arm replaces any pending wait with one of length d.
func (e *Engine) arm(d time.Duration) {
	e.disarm()
	gen := e.gen
	e.interval = d
	e.nextCycle = e.clock.Now().Add(d)
	e.timer = e.clock.AfterFunc(d, func() {
		e.post(func() { e.fire(gen) })
	})
	e.metrics.setInterval(d)
	e.logger.Debugf("engine: next cycle in %s", d)
}

// disarm cancels the pending wait. Bumping the generation discards a firing
// that was already queued.
func (e *Engine) disarm() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
	e.interval = 0
	e.nextCycle = time.Time{}
}

// fire handles a timer expiry: re-arm from the current configuration, then
// try to run a scheduled cycle.
func (e *Engine) fire(gen uint64) {
	if gen != e.gen || !e.machine.Is(StateRunning) {
		return
	}
	cycle := patterns.Resolve(e.cfg, e.axis, e.rnd)
	e.arm(cycle.Interval)
	e.dispatch(cycle.Vector, TriggerScheduled)
}
