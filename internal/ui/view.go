package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// gradientColors run from purple to green across the progress bar.
var gradientColors = []string{
	"#7D56F4", "#6E5AF5", "#5F5FF7", "#5063F8", "#4168FA",
	"#326CFB", "#2371FD", "#1475FE", "#057AFF", "#007FF5",
	"#0085E6", "#008BD7", "#0091C8", "#0097B9", "#009DAA",
	"#00A39B", "#00A98C", "#00AF7D", "#00B56E", "#00BB5F",
	"#43BF6D",
}

const progressWidth = 20

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return helpView()
	}

	switch m.State {
	case stateMenu:
		return menuView(m)
	case stateTimedInput:
		return timedInputView(m)
	case stateSettings:
		return settingsView(m)
	}

	return ""
}

func menuLabels(running bool) []string {
	toggle := "Start jiggling"
	if running {
		toggle = "Stop jiggling"
	}
	return []string{
		toggle,
		"Jiggle for X minutes",
		"Jiggle now",
		"Settings",
		"Quit",
	}
}

func menuView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Jiggler"))
	b.WriteString("\n\n")
	b.WriteString(statusView(m))
	b.WriteString("\n")

	for i, opt := range menuLabels(m.session.IsRunning()) {
		if i == m.Selected {
			b.WriteString(Current.Selected.Render("> " + opt))
		} else {
			b.WriteString(Current.Unselected.Render("  " + opt))
		}
		b.WriteString("\n")
	}

	if m.Notice != "" {
		b.WriteString("\n" + Current.Notice.Render(m.Notice))
	}
	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage))
	}

	b.WriteString("\n\n" + m.help.View(m.keys.ForState(m.State)))
	return b.String()
}

func statusView(m Model) string {
	var b strings.Builder
	status := m.engine.Status()

	if status.Running {
		b.WriteString(Current.Running.Render("● Jiggling"))
	} else {
		b.WriteString(Current.Stopped.Render("○ Stopped"))
	}
	b.WriteString("\n")
	b.WriteString(Current.Help.Render(status.Config.Summary()))
	b.WriteString("\n")

	if status.Running && !status.NextCycle.IsZero() {
		next := status.NextCycle.Sub(m.now()).Round(time.Second)
		if next < 0 {
			next = 0
		}
		b.WriteString(Current.Help.Render(fmt.Sprintf("Next jiggle in %s", next)))
		b.WriteString("\n")
	}

	if m.Duration > 0 && status.Running {
		remaining := m.TimeRemaining()
		minutes := int(remaining.Minutes())
		seconds := int(remaining.Seconds()) % 60
		b.WriteString(Current.Countdown.Render(fmt.Sprintf("%d:%02d remaining", minutes, seconds)))
		b.WriteString("\n")
		b.WriteString(progressBar(remaining, m.Duration))
		b.WriteString("\n")
	}

	return b.String()
}

func progressBar(remaining, total time.Duration) string {
	progress := 1.0 - (float64(remaining) / float64(total))
	filled := int(progress * float64(progressWidth))
	if filled > progressWidth {
		filled = progressWidth
	}

	var bar strings.Builder
	for i := 0; i < progressWidth; i++ {
		if i < filled {
			colorIndex := i * (len(gradientColors) - 1) / progressWidth
			block := Current.ProgressBar.Background(lipgloss.Color(gradientColors[colorIndex]))
			bar.WriteString(block.Render(" "))
		} else {
			bar.WriteString(Current.ProgressBar.Render(" "))
		}
	}
	return Current.ProgressBarContainer.Render(bar.String())
}

func timedInputView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Enter Duration"))
	b.WriteString("\n\n")

	b.WriteString(Current.Unselected.Render("Enter duration in minutes or as 1h30m:"))
	b.WriteString("\n")
	input := m.Input
	if input == "" {
		input = " "
	}
	b.WriteString(Current.InputBox.Render(input))
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.keys.ForState(m.State)))

	if m.ErrorMessage != "" {
		b.WriteString("\n\n" + Current.Error.Render(m.ErrorMessage))
	}

	return b.String()
}

func settingsView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Settings"))
	b.WriteString("\n\n")
	if m.form != nil {
		b.WriteString(m.form.View())
	}
	b.WriteString("\n\n" + m.help.View(m.keys.ForState(m.State)))

	return b.String()
}

func helpView() string {
	help := `Jiggler Help

Usage:
  jiggler [flags]

Flags:
  -d, --duration string   Jiggle for a duration (e.g., "2h30m" or minutes)
  -c, --clock string      Jiggle until a time of day (e.g., "22:30", "10:30PM")
      --mode string       tui, tray or headless
      --config path       Settings file
  -v, --version           Show version information
  -h, --help              Show help message

Menu:
  ↑/k, ↓/j  : Navigate menu
  Enter      : Select option
  s          : Start/stop
  n          : Jiggle now
  ,          : Settings
  h          : Show this help
  q/Esc      : Quit/Back

Press 'q' or 'Esc' to close help`

	return Current.Help.Render(help)
}
