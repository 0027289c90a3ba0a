package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/stigoleg/jiggler/internal/util"
)

// tickMsg is sent when the status refresh timer ticks
type tickMsg time.Time

const maxInputLen = 8

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// A timed session ends on its own; drop the countdown.
		if m.Duration > 0 && !m.session.IsRunning() {
			m.Duration = 0
		}
		return m, tick()
	case notificationMsg:
		m.Notice = string(msg)
		return m, m.notifications.wait()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}

	switch m.State {
	case stateMenu:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return updateMenu(msg, m)
		}
	case stateTimedInput:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return updateTimedInput(msg, m)
		}
	case stateSettings:
		return updateSettings(msg, m)
	}

	return m, nil
}

func updateMenu(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	if m.ShowHelp {
		if key.Matches(msg, m.keys.Quit, m.keys.ToggleHelp) {
			m.ShowHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.Selected < menuCount-1 {
			m.Selected++
		}
	case key.Matches(msg, m.keys.Select):
		return selectItem(m.Selected, m)
	case key.Matches(msg, m.keys.Toggle):
		return selectItem(menuToggle, m)
	case key.Matches(msg, m.keys.JiggleNow):
		return selectItem(menuJiggleNow, m)
	case key.Matches(msg, m.keys.Settings):
		return selectItem(menuSettings, m)
	case key.Matches(msg, m.keys.ToggleHelp):
		m.ShowHelp = true
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func selectItem(item int, m Model) (Model, tea.Cmd) {
	m.ErrorMessage = ""

	switch item {
	case menuToggle:
		var err error
		if m.session.IsRunning() {
			err = m.session.Stop()
		} else {
			err = m.session.StartIndefinite()
		}
		if err != nil {
			m.ErrorMessage = err.Error()
			return m, nil
		}
		m.Duration = 0
	case menuTimed:
		m.State = stateTimedInput
		m.Input = ""
	case menuJiggleNow:
		if err := m.engine.TriggerOnce(); err != nil {
			m.ErrorMessage = err.Error()
		}
	case menuSettings:
		m.formData = newSettingsForm(m.engine.Status().Config)
		m.form = newSettingsHuhForm(m.formData)
		if m.width > 0 {
			m.form = m.form.WithWidth(m.width)
		}
		m.State = stateSettings
		return m, m.form.Init()
	case menuQuit:
		return m, tea.Quit
	}
	return m, nil
}

func updateTimedInput(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.Input == "" {
			m.ErrorMessage = "Please enter a duration"
			return m, nil
		}
		d, err := util.SessionFor(m.Input)
		if errors.Is(err, util.ErrSessionTooShort) {
			m.ErrorMessage = "Duration must be at least 1s"
			return m, nil
		}
		if err != nil {
			m.ErrorMessage = "Invalid duration"
			return m, nil
		}
		if err := m.session.StartTimed(d); err != nil {
			m.ErrorMessage = err.Error()
			return m, nil
		}
		m.logger.Infof("ui: timed session for %s", d)
		m.State = stateMenu
		m.Duration = d
		m.ErrorMessage = ""
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.State = stateMenu
		m.ErrorMessage = ""
		return m, nil
	case key.Matches(msg, m.keys.Backspace):
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
			m.ErrorMessage = ""
		}
		return m, nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	s := msg.String()
	if len(s) == 1 && strings.ContainsAny(s, "0123456789hms") && len(m.Input) < maxInputLen {
		m.Input += s
		m.ErrorMessage = ""
	}
	return m, nil
}

func updateSettings(msg tea.Msg, m Model) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		return closeSettings(m), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		cfg, err := m.formData.Configuration()
		if err == nil {
			err = m.engine.ApplyConfiguration(cfg)
		}
		m = closeSettings(m)
		if err != nil {
			m.logger.Warnf("ui: applying settings failed: %v", err)
			m.ErrorMessage = err.Error()
		}
		return m, cmd
	case huh.StateAborted:
		return closeSettings(m), cmd
	}
	return m, cmd
}

func closeSettings(m Model) Model {
	m.State = stateMenu
	m.form = nil
	m.formData = nil
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
