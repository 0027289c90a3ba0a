// Package tray runs the jiggler from the system tray.
package tray

import (
	"fmt"
	"math"
	"sync"
	"time"

	"fyne.io/systray"
	"go.uber.org/zap"

	"github.com/stigoleg/jiggler/internal/engine"
)

// Controller is the part of the engine the tray drives.
type Controller interface {
	Status() engine.Status
	TriggerOnce() error
}

// Session starts and stops jiggling.
type Session interface {
	Toggle() error
	StartTimed(d time.Duration) error
	TimeRemaining() time.Duration
}

// Options configure a Manager.
type Options struct {
	Engine  Controller
	Session Session
	Logger  *zap.SugaredLogger
	// OnQuit runs when Quit is picked from the menu. The caller is expected
	// to tear down and call Manager.Quit.
	OnQuit func()
	// OpenSettings opens the configuration for editing. The menu entry is
	// left out when nil.
	OpenSettings func() error
	// Refresh is how often the status line is updated. Defaults to a second.
	Refresh time.Duration
}

// Durations offered under "Jiggle for...".
var sessionLengths = []time.Duration{
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	2 * time.Hour,
}

type action int

const (
	actionToggle action = iota
	actionJiggleNow
	actionTimed
	actionSettings
	actionQuit
)

// MsgEditingSettings is shown once the configuration file is opened.
const MsgEditingSettings = "Editing settings. Changes apply when the file is saved."

type titled interface {
	SetTitle(title string)
}

// Manager keeps the tray menu in sync with the engine.
type Manager struct {
	engine  Controller
	session Session
	logger  *zap.SugaredLogger
	onQuit  func()
	open    func() error
	refresh time.Duration
	now     func() time.Time

	setIcon    func([]byte)
	setTooltip func(string)

	mu         sync.Mutex
	statusItem titled
	toggleItem titled
	running    bool
	drawn      bool

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a tray manager. Nothing is shown until Run.
func New(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Refresh <= 0 {
		opts.Refresh = time.Second
	}
	if opts.OnQuit == nil {
		opts.OnQuit = systray.Quit
	}
	return &Manager{
		engine:     opts.Engine,
		session:    opts.Session,
		logger:     opts.Logger,
		onQuit:     opts.OnQuit,
		open:       opts.OpenSettings,
		refresh:    opts.Refresh,
		now:        time.Now,
		setIcon:    systray.SetIcon,
		setTooltip: systray.SetTooltip,
		done:       make(chan struct{}),
	}
}

// Run shows the tray icon and blocks until Quit.
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Quit removes the tray icon and makes Run return.
func (m *Manager) Quit() {
	systray.Quit()
}

// Notify shows message in the tooltip and under the status line.
func (m *Manager) Notify(message string) {
	m.setTooltip("Jiggler: " + message)
}

func (m *Manager) onReady() {
	systray.SetTitle("")
	m.setTooltip("Jiggler")

	status := systray.AddMenuItem("Status: starting...", "")
	status.Disable()
	systray.AddSeparator()
	toggle := systray.AddMenuItem("Start jiggling", "Start or stop the scheduler")
	jiggle := systray.AddMenuItem("Jiggle now", "Move the pointer once")
	jiggleFor := systray.AddMenuItem("Jiggle for...", "Jiggle for a while, then stop")
	timed := make(chan time.Duration)
	for _, d := range sessionLengths {
		item := jiggleFor.AddSubMenuItem(formatLength(d), "")
		go m.forward(item.ClickedCh, timed, d)
	}
	var settings <-chan struct{}
	if m.open != nil {
		settings = systray.AddMenuItem("Settings...", "Edit the configuration file").ClickedCh
	}
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Quit the jiggler")

	m.mu.Lock()
	m.statusItem = status
	m.toggleItem = toggle
	m.mu.Unlock()
	m.update()

	go func() {
		ticker := time.NewTicker(m.refresh)
		defer ticker.Stop()
		for {
			select {
			case <-toggle.ClickedCh:
				m.handle(actionToggle, 0)
			case <-jiggle.ClickedCh:
				m.handle(actionJiggleNow, 0)
			case d := <-timed:
				m.handle(actionTimed, d)
			case <-settings:
				m.handle(actionSettings, 0)
			case <-quit.ClickedCh:
				m.handle(actionQuit, 0)
			case <-ticker.C:
				m.update()
			case <-m.done:
				return
			}
		}
	}()
	m.logger.Infof("tray: ready")
}

func (m *Manager) onExit() {
	m.doneOnce.Do(func() { close(m.done) })
	m.logger.Infof("tray: exited")
}

func (m *Manager) forward(clicks <-chan struct{}, out chan<- time.Duration, d time.Duration) {
	for {
		select {
		case <-clicks:
			select {
			case out <- d:
			case <-m.done:
				return
			}
		case <-m.done:
			return
		}
	}
}

func (m *Manager) handle(a action, d time.Duration) {
	var err error
	switch a {
	case actionToggle:
		err = m.session.Toggle()
	case actionJiggleNow:
		err = m.engine.TriggerOnce()
	case actionTimed:
		err = m.session.StartTimed(d)
	case actionSettings:
		if err = m.open(); err == nil {
			m.Notify(MsgEditingSettings)
		}
	case actionQuit:
		m.onQuit()
		return
	}
	if err != nil {
		m.logger.Warnf("tray: action failed: %v", err)
		m.Notify(fmt.Sprintf("Error: %v", err))
	}
	m.update()
}

// update redraws the status line, the toggle label and the icon.
func (m *Manager) update() {
	status := m.engine.Status()
	remaining := m.session.TimeRemaining()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.statusItem != nil {
		m.statusItem.SetTitle(statusLabel(status, remaining, m.now()))
	}
	if m.toggleItem != nil {
		if status.Running {
			m.toggleItem.SetTitle("Stop jiggling")
		} else {
			m.toggleItem.SetTitle("Start jiggling")
		}
	}
	if !m.drawn || m.running != status.Running {
		m.drawn = true
		m.running = status.Running
		if status.Running {
			m.setIcon(iconRunning)
		} else {
			m.setIcon(iconStopped)
		}
	}
}

func statusLabel(status engine.Status, remaining time.Duration, now time.Time) string {
	if !status.Running {
		return "Status: stopped"
	}
	label := "Status: jiggling"
	if !status.NextCycle.IsZero() {
		next := status.NextCycle.Sub(now).Round(time.Second)
		if next < 0 {
			next = 0
		}
		label += fmt.Sprintf(", next in %s", next)
	}
	if remaining > 0 {
		label += fmt.Sprintf(", %dm left", int(math.Ceil(remaining.Minutes())))
	}
	return label
}

func formatLength(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	if d == time.Hour {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", int(d.Hours()))
}
