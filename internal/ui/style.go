// Package ui provides the terminal user interface for the jiggler.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title                lipgloss.Style
	Running              lipgloss.Style
	Stopped              lipgloss.Style
	Selected             lipgloss.Style
	Unselected           lipgloss.Style
	InputBox             lipgloss.Style
	Help                 lipgloss.Style
	Error                lipgloss.Style
	Notice               lipgloss.Style
	Countdown            lipgloss.Style
	ProgressBar          lipgloss.Style
	ProgressBarContainer lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Running: base.
			Bold(true).
			Foreground(defaultColors.Special),

		Stopped: base.
			Foreground(defaultColors.Subtle),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(defaultColors.Highlight),

		Unselected: lipgloss.NewStyle(),

		InputBox: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Highlight).
			Padding(0, 1),

		Help: base.
			Foreground(defaultColors.Subtle),

		Error: base.
			Foreground(defaultColors.Error),

		Notice: base.
			Italic(true).
			Foreground(defaultColors.Special),

		Countdown: base.
			Foreground(defaultColors.Highlight).
			Bold(true),

		ProgressBar: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#333333"}),

		ProgressBarContainer: base,
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
