package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#2E86AB")
	mutedColor  = lipgloss.Color("#888888")
	warnColor   = lipgloss.Color("#D1495B")
	textColor   = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	nameStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(mutedColor)

	selectedNameStyle = nameStyle.
				Bold(true).
				Foreground(textColor)

	barStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	valueStyle = lipgloss.NewStyle().
			Width(7).
			Align(lipgloss.Right).
			Foreground(textColor)

	meterStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	clipStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warnColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
