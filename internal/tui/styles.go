// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for the greeter.
// This file defines the shared lipgloss styles used across the different
// screens to ensure a consistent look and feel.
package tui

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // A nice teal/cyan
	colorError     = lipgloss.Color("196") // A bright red
	colorWhite     = lipgloss.Color("231")
)

var (
	// Title line inside the dialog
	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	// Prompt labels ("Username:", "Password:")
	promptStyle = lipgloss.NewStyle().Bold(true)

	// Help text and the "press <Enter> to continue" hint
	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Error messages and auth failure notes
	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	// Completion suggestions under the username input
	suggestionStyle         = lipgloss.NewStyle().Foreground(colorSubtle)
	selectedSuggestionStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	// The centered login dialog
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorHighlight).
			Padding(1, 2).
			Width(60)

	// Focused text input cursor
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	spinnerStyle = lipgloss.NewStyle().Foreground(colorWhite)
)
