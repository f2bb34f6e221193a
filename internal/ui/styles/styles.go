// Package styles centralizes the lipgloss styles shared by dbx output.
package styles

import "charm.land/lipgloss/v2"

// Colors used throughout the UI.
var (
	// Primary is the accent color for group names and headers.
	Primary = lipgloss.Color("62")

	// Success marks cloned repos and positive outcomes (green).
	Success = lipgloss.Color("82")

	// Warning marks unexpected-but-nonfatal conditions (yellow).
	Warning = lipgloss.Color("214")

	// Error marks failures (red).
	Error = lipgloss.Color("196")

	// Muted is used for not-yet-cloned entries and hints (gray).
	Muted = lipgloss.Color("240")
)

var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

// Status glyphs used by the repo tree listing.
var (
	// Cloned marks a repo that exists on disk and in the config.
	Cloned = SuccessStyle.Render("✓")

	// Available marks a configured repo that is not cloned yet.
	Available = MutedStyle.Render("○")

	// Untracked marks an on-disk repo the config does not know about.
	Untracked = WarningStyle.Render("?")
)
