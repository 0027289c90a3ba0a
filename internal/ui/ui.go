package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/engine"
)

// Controller is the part of the engine the TUI drives directly.
type Controller interface {
	Status() engine.Status
	TriggerOnce() error
	ApplyConfiguration(cfg config.Configuration) error
}

// Session starts and stops jiggling, optionally for a limited time.
type Session interface {
	IsRunning() bool
	StartIndefinite() error
	StartTimed(d time.Duration) error
	Stop() error
	TimeRemaining() time.Duration
}

// Notifications is a non-blocking notification sink feeding the TUI.
// When the buffer is full new messages are dropped.
type Notifications struct {
	ch chan string
}

// NewNotifications creates a sink buffering up to size messages.
func NewNotifications(size int) *Notifications {
	if size < 1 {
		size = 1
	}
	return &Notifications{ch: make(chan string, size)}
}

// Notify implements engine.Notifier.
func (n *Notifications) Notify(message string) {
	select {
	case n.ch <- message:
	default:
	}
}

// notificationMsg carries one notification into the update loop.
type notificationMsg string

func (n *Notifications) wait() tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		return notificationMsg(<-n.ch)
	}
}

// NewProgram wraps m in a full-screen bubbletea program. Signals are left
// to the caller.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}, opts...)
	return tea.NewProgram(m, opts...)
}
