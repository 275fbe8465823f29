// Package ui implements the interactive dashboard and chat surfaces.
// Both apply mutations optimistically: the local state changes before
// the request resolves, a snapshot is captured first, and any failure
// restores the snapshot in full.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)

	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	pendingStyle = lipgloss.NewStyle().Faint(true)
	descStyle    = lipgloss.NewStyle().Faint(true)

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	toolOkStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	toolFailStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
