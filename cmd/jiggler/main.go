package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/engine"
	"github.com/stigoleg/jiggler/internal/keepalive"
	"github.com/stigoleg/jiggler/internal/logger"
	"github.com/stigoleg/jiggler/internal/platform"
	"github.com/stigoleg/jiggler/internal/tray"
	"github.com/stigoleg/jiggler/internal/ui"
	"github.com/stigoleg/jiggler/internal/util"
)

const (
	appVersion     = "2.0.0"
	cleanupTimeout = 5 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	flags, err := config.ParseFlags(appVersion)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	base, closeLog, err := logger.New(logger.Options{Path: flags.LogFile, Level: flags.LogLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closeLog()
	log := logger.For(base, "main")

	lock, err := platform.AcquireInstanceLock("jiggler")
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "jiggler is already running")
			return 1
		}
		log.Warnf("single instance check unavailable: %v", err)
	}

	cleanup := keepalive.NewCleanupManager(cleanupTimeout, logger.For(base, "cleanup"))
	defer func() {
		for _, err := range cleanup.Execute() {
			log.Errorf("cleanup: %v", err)
		}
	}()
	cleanup.RegisterFunc("instance lock", func(context.Context) error { return lock.Release() })

	a, err := newApp(flags, base)
	if err != nil {
		log.Errorf("startup failed: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	a.register(cleanup)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, getSignalsForPlatform()...)
	defer signal.Stop(sigChan)

	log.Infof("jiggler %s starting (mode=%s, config=%s)", appVersion, flags.Mode, a.store.Path())

	switch flags.Mode {
	case config.ModeTray:
		err = a.runTray(sigChan)
	case config.ModeHeadless:
		err = a.runHeadless(sigChan)
	default:
		err = a.runTUI(sigChan)
	}
	if err != nil {
		log.Errorf("exited with error: %v", err)
		return 1
	}
	return 0
}

// errNoTerminal is returned when the TUI is requested without a terminal.
var errNoTerminal = errors.New("no terminal; use --mode headless or --mode tray")

// app is the wired-up jiggler.
type app struct {
	flags  *config.Flags
	base   *zap.Logger
	log    *zap.SugaredLogger
	store  *config.Store
	engine *engine.Engine
	keeper *keepalive.Keeper
	sinks  *fanout

	cancelWatch context.CancelFunc
	metricsSrv  *http.Server
}

func newApp(flags *config.Flags, base *zap.Logger) (*app, error) {
	a := &app{flags: flags, base: base, log: logger.For(base, "main"), sinks: &fanout{}}
	a.sinks.Add(engine.NotifierFunc(func(message string) {
		a.log.Infof("notify: %s", message)
	}))

	path := flags.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	a.store = config.NewStore(path, logger.For(base, "config"))
	cfg := a.store.Load()

	if msg := platform.DependencyMessage(); msg != "" {
		a.log.Warnf("missing dependencies:\n%s", msg)
	}

	pointer, err := platform.NewPointer()
	if err != nil {
		return nil, fmt.Errorf("pointer control unavailable: %w", err)
	}

	a.engine, err = engine.New(cfg, engine.Options{
		Actuator: platform.NewActuator(pointer, platform.VisibilityDelay),
		Idle:     platform.NewIdleMonitor(logger.For(base, "platform")),
		Notifier: a.sinks,
		Saver:    a.store,
		Logger:   logger.For(base, "engine"),
		Metrics:  engine.NewMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		return nil, err
	}
	a.keeper = keepalive.NewKeeper(a.engine, nil, logger.For(base, "keeper"))

	a.watchConfig()
	a.serveMetrics()
	return a, nil
}

func (a *app) watchConfig() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelWatch = cancel

	if err := os.MkdirAll(filepath.Dir(a.store.Path()), 0o755); err != nil {
		a.log.Warnf("config: live reload disabled: %v", err)
		return
	}
	err := a.store.Watch(ctx, func(cfg config.Configuration) {
		if err := a.engine.Reconfigure(cfg); err != nil {
			a.log.Warnf("config: reload not applied: %v", err)
		}
	})
	if err != nil {
		a.log.Warnf("config: live reload disabled: %v", err)
	}
}

func (a *app) serveMetrics() {
	if a.flags.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	a.metricsSrv = &http.Server{
		Addr:              a.flags.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.log.Infof("metrics: serving on %s/metrics", a.flags.MetricsAddr)
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Errorf("metrics: %v", err)
		}
	}()
}

// register adds teardown steps. They run in reverse order, so the session
// is stopped first and the engine is shut down before the lock is released.
func (a *app) register(cleanup *keepalive.CleanupManager) {
	cleanup.RegisterFunc("engine", a.engine.Shutdown)
	if a.metricsSrv != nil {
		cleanup.RegisterFunc("metrics server", a.metricsSrv.Shutdown)
	}
	cleanup.RegisterFunc("config watcher", func(context.Context) error {
		a.cancelWatch()
		return nil
	})
	cleanup.RegisterFunc("session", func(context.Context) error {
		return a.keeper.Stop()
	})
}

// startSession announces the configuration and starts jiggling when the
// flags or the settings ask for it. It returns the timed session length.
func (a *app) startSession() time.Duration {
	cfg := a.engine.Config()
	a.sinks.Notify("Ready. " + cfg.Summary())

	d, err := a.start(cfg, time.Now())
	if err != nil {
		a.log.Errorf("start failed: %v", err)
		a.sinks.Notify(fmt.Sprintf("Not started: %v", err))
		return 0
	}
	return d
}

func (a *app) start(cfg config.Configuration, now time.Time) (time.Duration, error) {
	switch {
	case a.flags.Timed():
		d := a.flags.SessionLength(now)
		if d < util.MinSession {
			return 0, fmt.Errorf("session end %s: %w", a.flags.Clock.Format("15:04"), util.ErrSessionTooShort)
		}
		return d, a.keeper.StartTimed(d)
	case cfg.StartOnLaunch:
		return 0, a.keeper.StartIndefinite()
	}
	return 0, nil
}

func (a *app) runTUI(sigChan <-chan os.Signal) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	notifications := ui.NewNotifications(16)
	a.sinks.Add(notifications)

	d := a.startSession()
	opts := ui.Options{
		Engine:        a.engine,
		Session:       a.keeper,
		Notifications: notifications,
		Logger:        logger.For(a.base, "ui"),
	}
	var model ui.Model
	if d > 0 {
		model = ui.InitialModelWithDuration(opts, d)
	} else {
		model = ui.InitialModel(opts)
	}

	p := ui.NewProgram(model)
	go func() {
		sig := waitForSignal(sigChan, a.log)
		a.log.Infof("received signal: %v", sig)
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (a *app) runTray(sigChan <-chan os.Signal) error {
	var manager *tray.Manager
	manager = tray.New(tray.Options{
		Engine:       a.engine,
		Session:      a.keeper,
		Logger:       logger.For(a.base, "tray"),
		OnQuit:       func() { manager.Quit() },
		OpenSettings: a.openSettings,
	})
	a.sinks.Add(manager)

	go func() {
		sig := waitForSignal(sigChan, a.log)
		a.log.Infof("received signal: %v", sig)
		manager.Quit()
	}()

	a.startSession()
	manager.Run()
	return nil
}

// openSettings opens the configuration file, writing the current settings
// first when there is none yet. Saved edits arrive through the watcher.
func (a *app) openSettings() error {
	path := a.store.Path()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := a.store.Save(a.engine.Config()); err != nil {
			return fmt.Errorf("create settings file: %w", err)
		}
	}
	return util.OpenPath(path)
}

func (a *app) runHeadless(sigChan <-chan os.Signal) error {
	a.startSession()
	sig := waitForSignal(sigChan, a.log)
	a.log.Infof("received signal: %v", sig)
	return nil
}

// waitForSignal returns the first signal that should end the process.
// Suspending is refused so that a pointer is never left displaced.
func waitForSignal(sigChan <-chan os.Signal, log *zap.SugaredLogger) os.Signal {
	for sig := range sigChan {
		if isSIGTSTPForPlatform(sig) {
			log.Infof("ignoring %v", sig)
			continue
		}
		return sig
	}
	return nil
}
