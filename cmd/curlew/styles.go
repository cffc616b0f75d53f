package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor     = lipgloss.Color("#6c6c6c")
	SuccessColor = lipgloss.Color("#9ece6a")
	WarningColor = lipgloss.Color("#e0af68")
	ErrorColor   = lipgloss.Color("#f7768e")
)

// Report line styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	DetailStyle = lipgloss.NewStyle().
			Foreground(DimColor)
)
