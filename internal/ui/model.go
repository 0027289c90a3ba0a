package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"
)

// Menu entries, in display order.
const (
	menuToggle = iota
	menuTimed
	menuJiggleNow
	menuSettings
	menuQuit
	menuCount
)

// Options configure a Model.
type Options struct {
	Engine        Controller
	Session       Session
	Notifications *Notifications
	Logger        *zap.SugaredLogger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model holds the current state of the UI.
type Model struct {
	State        state
	Selected     int
	Input        string
	ErrorMessage string
	Notice       string
	ShowHelp     bool

	// Duration is the length of the current timed session, zero otherwise.
	Duration time.Duration

	engine        Controller
	session       Session
	notifications *Notifications
	logger        *zap.SugaredLogger
	now           func() time.Time
	keys          KeyMap
	help          help.Model

	form     *huh.Form
	formData *settingsForm
	width    int
}

// InitialModel returns the menu model.
func InitialModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	return Model{
		State:         stateMenu,
		engine:        opts.Engine,
		session:       opts.Session,
		notifications: opts.Notifications,
		logger:        opts.Logger,
		now:           opts.Now,
		keys:          DefaultKeys(),
		help:          NewHelpModel(),
	}
}

// InitialModelWithDuration returns a model showing a timed session of d that
// the caller has already started.
func InitialModelWithDuration(opts Options, d time.Duration) Model {
	m := InitialModel(opts)
	m.Duration = d
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.notifications.wait())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := Update(msg, m)
	return newModel, cmd
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// TimeRemaining returns the remaining duration of a timed session.
func (m Model) TimeRemaining() time.Duration {
	if m.Duration <= 0 || m.session == nil {
		return 0
	}
	return m.session.TimeRemaining()
}
