package ui

import "github.com/charmbracelet/lipgloss"

var mutedColor = lipgloss.Color("#6B7280")

var MutedStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Italic(true)
