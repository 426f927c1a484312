// Package ui renders the status view shown while a mode is held.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors is the color scheme used throughout the application.
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

// Style is the collection of styles used by the views.
type Style struct {
	Title  lipgloss.Style
	Active lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Box    lipgloss.Style
	Help   lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyle returns the default style configuration.
func DefaultStyle() Style {
	base := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

	return Style{
		Title:  base.Bold(true).Foreground(defaultColors.Highlight),
		Active: base.Foreground(defaultColors.Special),
		Label:  base.Foreground(defaultColors.Subtle),
		Value:  base.Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Highlight).
			Padding(0, 1),
		Help:  base.Foreground(defaultColors.Subtle),
		Error: base.Foreground(defaultColors.Error),
	}
}

// Current holds the current style configuration.
var Current = DefaultStyle()
